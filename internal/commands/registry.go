// Package commands holds the named command table that scripted (-e) and
// interactive command lines run against.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/plugin"
)

// ErrUnknownCommand is returned by Execute for unregistered names.
var ErrUnknownCommand = errors.New("unknown command")

// Notifier reports a one-line status message to the user.
type Notifier func(format string, args ...interface{})

// Registry maps command names to their functions.
type Registry struct {
	commands map[string]plugin.CommandFunc
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]plugin.CommandFunc)}
}

// Register adds a command. Names must be non-empty and unique.
func (r *Registry) Register(name string, fn plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("command '%s' has no function", name)
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	r.commands[name] = fn
	logger.Debugf("Commands: Registered ':%s'", name)
	return nil
}

// Execute parses and runs one command line. A leading ':' is ignored.
// A line of the form "s/pat/rep/flags" is passed whole to the "s"
// command so the pattern keeps its spaces.
func (r *Registry) Execute(line string) error {
	line = strings.TrimPrefix(strings.TrimSpace(line), ":")
	if line == "" {
		return nil
	}

	var name string
	var args []string
	if strings.HasPrefix(line, "s/") {
		name, args = "s", []string{line[1:]}
	} else {
		parts := strings.Fields(line)
		name, args = parts[0], parts[1:]
	}

	fn, exists := r.commands[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	logger.Debugf("Commands: Executing ':%s' with args %v", name, args)
	if err := fn(args); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Names lists the registered commands in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for n := range r.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
