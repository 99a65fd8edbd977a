package log

import (
	"fmt"
	"strings"

	"github.com/mwantia/ossfm/data"
)

type LogLevel int

const (
	Debug LogLevel = iota
	Info
	Warn
	Error
	Fatal
)

const colorReset = "\033[0m"

// levelColors holds the ANSI foreground of terminal lines per level.
var levelColors = map[LogLevel]string{
	Debug: "\033[34m",
	Info:  "\033[32m",
	Warn:  "\033[33m",
	Error: "\033[31m",
	Fatal: "\033[35m",
}

// color returns the escape sequence for l, or a reset for unknown levels.
func (l LogLevel) color() string {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return colorReset
}

func (l LogLevel) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Parse resolves a level name as used by the log_level setting and --log-level flag.
func Parse(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG", "TRACE":
		return Debug, nil
	case "", "INFO":
		return Info, nil
	case "WARN", "WARNING":
		return Warn, nil
	case "ERROR":
		return Error, nil
	case "FATAL":
		return Fatal, nil
	default:
		return Info, fmt.Errorf("failed to parse log level '%s': %w", level, data.ErrInvalid)
	}
}
