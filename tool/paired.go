package tool

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/log"
)

func (e *Exec) stopper(c Command, p Process) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			log.Debug("Terminating '%s'.\n", c)
			if err := p.Terminate(); err != nil {
				log.Debug("Failed to terminate '%s': %s\n", c, err)
			}
			// Exit status of a terminated process carries no information.
			_ = p.Wait()
		})
	}
}

// RunPaired runs foreground while background is alive. The background
// output is discarded unless background.Stdout is set.
func (e *Exec) RunPaired(ctx context.Context, background Command, foreground func(context.Context) error) error {
	if background.Stdout == nil {
		background.Stdout = io.Discard
	}
	p, err := e.start(background)
	if err != nil {
		return errors.Trace(err)
	}
	stop := e.stopper(background, p)
	defer stop()

	err = foreground(ctx)
	stop()
	return errors.Trace(err)
}

// RunFor holds c for at most hold, then terminates it. A command that
// exits on its own earlier is reported like Run would.
func (e *Exec) RunFor(ctx context.Context, c Command, hold time.Duration) error {
	p, err := e.start(c)
	if err != nil {
		return errors.Trace(err)
	}

	exited := make(chan error, 1)
	go func() {
		exited <- p.Wait()
	}()

	log.Spinner.Suffix = fmt.Sprintf(" Waiting %s for '%s'", hold, c.Args[0])
	log.Spinner.Start()
	defer log.Spinner.Stop()

	timer := time.NewTimer(hold)
	defer timer.Stop()

	select {
	case err := <-exited:
		return errors.Trace(err)
	case <-timer.C:
		log.Debug("Held '%s' for %s.\n", c, hold)
	case <-ctx.Done():
		log.Debug("Context cancelled while holding '%s'.\n", c)
	}

	if err := p.Terminate(); err != nil {
		log.Debug("Failed to terminate '%s': %s\n", c, err)
	}
	<-exited
	return nil
}
