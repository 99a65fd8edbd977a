package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwantia/ossfm/data"
)

// Parser parses user-defined arguments into flags
type Parser struct {
	flagSet *CommandFlagSet
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	if flagSet == nil {
		flagSet = &CommandFlagSet{}
	}

	return &Parser{
		flagSet: flagSet,
	}
}

func (cp *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Args:  make([]string, 0),
		Flags: make(map[string]any),
		Raw:   raw,
	}

	longToName := make(map[string]string)
	shortToName := make(map[string]string)
	for flagName, flag := range cp.flagSet.Flags {
		if flag.Default != nil {
			args.Flags[flagName] = flag.Default
		}

		longToName[flag.Name] = flagName
		if flag.Short != "" {
			shortToName[flag.Short] = flagName
		}
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			args.Args = append(args.Args, raw[i+1:]...)
			break
		}

		if strings.HasPrefix(arg, "--") {
			key, value, hasValue := parseLongFlag(arg)
			flagName, exists := longToName[key]
			if !exists {
				return nil, fmt.Errorf("unknown flag --%s: %w", key, data.ErrInvalid)
			}

			flag := cp.flagSet.Flags[flagName]
			switch {
			case flag.Type == "bool":
				args.Flags[flagName] = !hasValue || parseBool(value)
			case hasValue:
				coerced, err := coerce(key, value, flag.Type)
				if err != nil {
					return nil, err
				}
				args.Flags[flagName] = coerced
			case i+1 < len(raw):
				coerced, err := coerce(key, raw[i+1], flag.Type)
				if err != nil {
					return nil, err
				}
				args.Flags[flagName] = coerced
				i++
			default:
				return nil, fmt.Errorf("flag --%s requires a value: %w", key, data.ErrInvalid)
			}
			continue
		}

		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			shortFlags := arg[1:]

			for j, shortChar := range shortFlags {
				shortStr := string(shortChar)
				flagName, exists := shortToName[shortStr]
				if !exists {
					return nil, fmt.Errorf("unknown flag -%s: %w", shortStr, data.ErrInvalid)
				}

				flag := cp.flagSet.Flags[flagName]
				if flag.Type == "bool" {
					args.Flags[flagName] = true
					continue
				}

				var value string
				if j+len(string(shortChar)) < len(shortFlags) {
					value = shortFlags[j+len(string(shortChar)):]
				} else if i+1 < len(raw) {
					value = raw[i+1]
					i++
				} else {
					return nil, fmt.Errorf("flag -%s requires a value: %w", shortStr, data.ErrInvalid)
				}

				coerced, err := coerce(flag.Name, value, flag.Type)
				if err != nil {
					return nil, err
				}
				args.Flags[flagName] = coerced
				break
			}
			continue
		}

		args.Args = append(args.Args, arg)
	}

	for flagName, flag := range cp.flagSet.Flags {
		if !flag.Required {
			continue
		}
		if _, ok := args.Flags[flagName]; !ok {
			if flag.Short != "" {
				return nil, fmt.Errorf("required flag -%s / --%s: %w", flag.Short, flag.Name, data.ErrInvalid)
			}
			return nil, fmt.Errorf("required flag --%s: %w", flag.Name, data.ErrInvalid)
		}
	}

	return args, nil
}

func parseLongFlag(arg string) (key, value string, hasValue bool) {
	arg = strings.TrimPrefix(arg, "--")
	if idx := strings.Index(arg, "="); idx >= 0 {
		return arg[:idx], arg[idx+1:], true
	}
	return arg, "", false
}

func parseBool(value string) bool {
	return value == "true" || value == "1" || value == "yes"
}

func coerce(name, value, typeStr string) (any, error) {
	switch typeStr {
	case "int":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("flag --%s expects a number, got '%s': %w", name, value, data.ErrInvalid)
		}
		return v, nil
	case "bool":
		return parseBool(value), nil
	default:
		return value, nil
	}
}
