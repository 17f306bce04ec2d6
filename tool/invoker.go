// Package tool runs the external tools every stage delegates to.
package tool

import (
	"context"
	"time"
)

// Invoker runs commands on behalf of the stages.
type Invoker interface {
	// Run executes c and waits for it to finish.
	Run(ctx context.Context, c Command) error
	// RunPaired starts background, runs foreground and terminates background
	// exactly once afterwards, whether foreground succeeded, failed or panicked.
	RunPaired(ctx context.Context, background Command, foreground func(context.Context) error) error
	// RunFor starts c and terminates it after hold unless it exits earlier.
	RunFor(ctx context.Context, c Command, hold time.Duration) error
}
