// Package failure defines the error classes every command can end with.
// All of them are fatal: nothing in the pipeline retries or degrades.
package failure

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
)

// ConfigError reports a required configuration key that could not be resolved.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("Variable %s %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("Variable %s has no value", e.Key)
}

// ValidationError reports an unknown chip family or board, an unsupported
// option or a broken board declaration.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PreconditionError reports a missing upstream artifact.
type PreconditionError struct {
	Message string
	// Stage that must run before the failing one.
	Stage string
}

func (e *PreconditionError) Error() string {
	if e.Stage == "" {
		return e.Message
	}
	return fmt.Sprintf("%s Run %q before.", e.Message, e.Stage)
}

// Preconditionf creates a PreconditionError pointing at the stage to run first.
func Preconditionf(stage string, format string, args ...interface{}) error {
	return &PreconditionError{Message: fmt.Sprintf(format, args...), Stage: stage}
}

// ToolExecutionError reports a delegated process that exited with a non-zero code.
type ToolExecutionError struct {
	Command  []string
	ExitCode int
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("'%s' exited with code %d", strings.Join(e.Command, " "), e.ExitCode)
}

// LaunchError reports a process that could not be started at all.
type LaunchError struct {
	Command []string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start '%s': %s", strings.Join(e.Command, " "), e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsConfig reports whether err was caused by a ConfigError.
func IsConfig(err error) bool {
	_, ok := errors.Cause(err).(*ConfigError)
	return ok
}

// IsValidation reports whether err was caused by a ValidationError.
func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// IsPrecondition reports whether err was caused by a PreconditionError.
func IsPrecondition(err error) bool {
	_, ok := errors.Cause(err).(*PreconditionError)
	return ok
}

// IsToolExecution reports whether err was caused by a ToolExecutionError.
func IsToolExecution(err error) bool {
	_, ok := errors.Cause(err).(*ToolExecutionError)
	return ok
}

// IsLaunch reports whether err was caused by a LaunchError.
func IsLaunch(err error) bool {
	_, ok := errors.Cause(err).(*LaunchError)
	return ok
}

// Class names the error class of err, or "" if it is not one of ours.
func Class(err error) string {
	switch errors.Cause(err).(type) {
	case *ConfigError:
		return "configuration"
	case *ValidationError:
		return "validation"
	case *PreconditionError:
		return "precondition"
	case *ToolExecutionError:
		return "tool execution"
	case *LaunchError:
		return "launch"
	}
	return ""
}

// Message returns the innermost classified message of err, without the
// annotations added while it travelled up.
func Message(err error) string {
	if Class(err) != "" {
		return errors.Cause(err).Error()
	}
	return err.Error()
}
