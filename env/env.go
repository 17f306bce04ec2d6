// Package env holds the environment handed to every delegated tool.
//
// An Environment is an immutable value: extending it returns a new value and
// never changes the one it was derived from. Stage handlers receive it
// explicitly instead of reading or mutating the process environment.
package env

import (
	"fmt"
	"strings"

	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/util"
)

// Environment is an ordered mapping of environment variables.
type Environment struct {
	vars util.OrderedMap[string, string]
}

// New returns an empty Environment.
func New() Environment {
	return Environment{vars: util.NewOrderedMap[string, string]()}
}

// FromList builds an Environment from "KEY=value" entries as returned by os.Environ.
// Entries without "=" are skipped; later duplicates win.
func FromList(list []string) Environment {
	e := New()
	for _, entry := range list {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		e.vars.Insert(key, value)
	}
	return e
}

// With returns a copy of e with key set to value.
func (e Environment) With(key, value string) Environment {
	vars := e.vars.Clone()
	vars.Insert(key, value)
	return Environment{vars: vars}
}

// Merge returns a copy of e extended by all variables of other.
func (e Environment) Merge(other Environment) Environment {
	vars := e.vars.Clone()
	for _, entry := range other.vars.Entries() {
		vars.Insert(entry.Key, entry.Value)
	}
	return Environment{vars: vars}
}

// Lookup returns the value of key and whether it is set.
func (e Environment) Lookup(key string) (string, bool) {
	return e.vars.Lookup(key)
}

// Get returns the value of key or "" if it is not set.
func (e Environment) Get(key string) string {
	value, _ := e.vars.Lookup(key)
	return value
}

// Require fails with a ConfigError naming the first key that is not set.
func (e Environment) Require(keys ...string) error {
	for _, key := range keys {
		if _, ok := e.vars.Lookup(key); !ok {
			return &failure.ConfigError{Key: key, Reason: "is required but not set"}
		}
	}
	return nil
}

// Len returns the number of variables.
func (e Environment) Len() int {
	return e.vars.Len()
}

// Keys returns the sorted variable names.
func (e Environment) Keys() []string {
	return e.vars.Keys()
}

// List returns the variables as sorted "KEY=value" entries, ready for exec.Cmd.Env.
func (e Environment) List() []string {
	return util.MappedSlice(e.vars.Entries(), func(entry util.OrderedMapEntry[string, string]) string {
		return fmt.Sprintf("%s=%s", entry.Key, entry.Value)
	})
}
