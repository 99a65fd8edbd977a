package command

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments (command-specific)
	Args []string

	// Parsed flags
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string
}

// Arg returns the positional argument at index, or fallback when absent.
func (ca *CommandArgs) Arg(index int, fallback string) string {
	if index < 0 || index >= len(ca.Args) {
		return fallback
	}
	return ca.Args[index]
}

func (ca *CommandArgs) Bool(name string) bool {
	value, _ := ca.Flags[name].(bool)
	return value
}

func (ca *CommandArgs) String(name string) string {
	value, _ := ca.Flags[name].(string)
	return value
}

func (ca *CommandArgs) Int(name string) int {
	switch value := ca.Flags[name].(type) {
	case int64:
		return int(value)
	case int:
		return value
	}
	return 0
}

// CommandFlagSet defines the expected flags for a command
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// CommandFlag represents a single command-line flag
type CommandFlag struct {
	Name        string `json:"name"`              // e.g., "plain"
	Short       string `json:"short"`             // Single-char shorthand (e.g., "p")
	Type        string `json:"type"`              // "string", "bool", "int"
	Default     any    `json:"default,omitempty"` // Default value
	Required    bool   `json:"required"`          // Must be provided
	Description string `json:"description"`       // Help text
}
