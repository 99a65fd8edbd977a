package command

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/mwantia/ossfm/data"
)

// CommandCenter handles command registration, parsing, and execution
type CommandCenter struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

func NewCommandCenter() *CommandCenter {
	return &CommandCenter{
		cmds: make(map[string]Command),
	}
}

// Register registers a command under its name
func (cc *CommandCenter) Register(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil: %w", data.ErrInvalid)
	}

	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty: %w", data.ErrInvalid)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	if _, exists := cc.cmds[name]; exists {
		return fmt.Errorf("command '%s' already registered: %w", name, data.ErrExist)
	}

	cc.cmds[name] = cmd
	return nil
}

// Unregister removes a registered command
func (cc *CommandCenter) Unregister(name string) error {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if _, exists := cc.cmds[name]; !exists {
		return fmt.Errorf("command '%s' not found: %w", name, data.ErrNotExist)
	}

	delete(cc.cmds, name)
	return nil
}

// Get returns a command by name
func (cc *CommandCenter) Get(name string) (Command, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	cmd, exists := cc.cmds[name]
	if !exists {
		return nil, fmt.Errorf("command '%s' not found: %w", name, data.ErrNotExist)
	}

	return cmd, nil
}

// List returns all registered commands ordered by name
func (cc *CommandCenter) List() []Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	commands := make([]Command, 0, len(cc.cmds))
	for _, cmd := range cc.cmds {
		commands = append(commands, cmd)
	}

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
	return commands
}

// Execute parses and executes a command. args[0] names the command.
func (cc *CommandCenter) Execute(ctx context.Context, api API, writer io.Writer, args ...string) (int, error) {
	if len(args) == 0 {
		return 1, fmt.Errorf("no command specified: %w", data.ErrInvalid)
	}

	cmd, err := cc.Get(args[0])
	if err != nil {
		return 1, err
	}

	parsed, err := NewParser(cmd.GetFlags()).Parse(args[1:])
	if err != nil {
		return 2, fmt.Errorf("failed to parse arguments for '%s': %w", cmd.Name(), err)
	}

	return cmd.Execute(ctx, api, parsed, writer)
}

// WriteHelp prints one line per registered command.
func (cc *CommandCenter) WriteHelp(writer io.Writer) {
	for _, cmd := range cc.List() {
		fmt.Fprintf(writer, "  %-10s %s\n", cmd.Name(), cmd.Description())
	}
}
