package tool

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/errors"

	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/log"
)

// Process is a started command.
type Process interface {
	// Wait blocks until the process exits.
	Wait() error
	// Terminate asks the process to exit. It does not wait for it.
	Terminate() error
}

type starter func(c Command) (Process, error)

// Exec is the Invoker backed by operating system processes.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer

	start starter
}

// NewExec returns an Exec forwarding output to the terminal.
func NewExec() *Exec {
	e := &Exec{Stdout: os.Stdout, Stderr: os.Stderr}
	e.start = e.startProcess
	return e
}

type osProcess struct {
	args []string
	cmd  *exec.Cmd
}

func (p *osProcess) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &failure.ToolExecutionError{Command: p.args, ExitCode: exitErr.ExitCode()}
		}
		return errors.Annotatef(err, "waiting for '%s' failed", p.cmd)
	}
	return nil
}

func (p *osProcess) Terminate() error {
	return p.cmd.Process.Signal(syscall.SIGTERM)
}

func (e *Exec) startProcess(c Command) (Process, error) {
	if len(c.Args) == 0 {
		return nil, &failure.LaunchError{Command: c.Args, Err: fmt.Errorf("empty command")}
	}
	log.Debug("Running '%s' in '%s'.\n", c, c.Dir)

	cmd := exec.Command(c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	// Never inherit the process environment.
	cmd.Env = c.Env.List()
	cmd.Stdin = os.Stdin
	if c.Stdin != nil {
		cmd.Stdin = c.Stdin
	}
	cmd.Stdout = e.Stdout
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	cmd.Stderr = e.Stderr

	if err := cmd.Start(); err != nil {
		return nil, &failure.LaunchError{Command: c.Args, Err: err}
	}
	return &osProcess{args: c.Args, cmd: cmd}, nil
}

// Run executes c in the foreground. Ctrl-C reaches the child through the
// process group, so the first one only waits for it to finish; two within a
// second kill the whole group.
func (e *Exec) Run(ctx context.Context, c Command) error {
	p, err := e.start(c)
	if err != nil {
		return errors.Trace(err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGINT)
	defer signal.Stop(signals)

	done := make(chan struct{})
	defer close(done)

	go func() {
		var lastSignalTime *time.Time
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				log.Debug("Context cancelled, terminating '%s'.\n", c)
				if err := p.Terminate(); err != nil {
					log.Debug("Failed to terminate '%s': %s\n", c, err)
				}
				return
			case <-signals:
				currentTime := time.Now()
				if lastSignalTime == nil || currentTime.Sub(*lastSignalTime) > 1*time.Second {
					log.Warning("SIGINT: Waiting for '%s' to finish. Press Ctrl-C again within 1 sec to force-kill it.\n", c.Args[0])
					lastSignalTime = &currentTime
				} else {
					log.Warning("SIGINT: Killing elements, '%s' and its subprocesses...\n", c.Args[0])
					// Only safe while elements leads its process group.
					if err := syscall.Kill(-syscall.Getpid(), syscall.SIGKILL); err != nil {
						log.Error("Failed to kill '%s': %s\n", c.Args[0], err)
					}
				}
			}
		}
	}()

	return errors.Trace(p.Wait())
}
