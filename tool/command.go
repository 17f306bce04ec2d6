package tool

import (
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/mattn/go-shellwords"

	"github.com/phytec-labs/elements/env"
)

// Command is a single invocation of an external tool.
type Command struct {
	Args []string
	Env  env.Environment
	Dir  string
	// Stdout replaces the forwarded standard output when set.
	Stdout io.Writer
	// Stdin replaces the forwarded standard input when set.
	Stdin io.Reader
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Parse splits a command line the way a POSIX shell would, without
// expanding variables. Command separators and redirections are rejected.
func Parse(line string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(line)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to parse %q", line)
	}
	if parser.Position >= 0 {
		return nil, errors.Errorf("unsupported shell operator in %q", line)
	}
	if len(args) == 0 {
		return nil, errors.Errorf("empty command line")
	}
	return args, nil
}

// MustParse is Parse for command lines built from constants.
func MustParse(line string) []string {
	args, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return args
}
