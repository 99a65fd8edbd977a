package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	mu     *sync.Mutex
	writer io.Writer
	exit   func(int)

	Name  string
	Level LogLevel

	TimeFormat string
	File       string
	NoColor    bool
	JSON       bool
	NoTerminal bool
	Rotation   *LoggerRotation
}

type LoggerRotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

type LoggerOption func(*Logger)

// WithFile additionally writes every line to a rotated log file.
func WithFile(file string) LoggerOption {
	return func(l *Logger) {
		l.File = file
	}
}

// WithWriter replaces the terminal output, mostly used by tests.
func WithWriter(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.writer = w
		l.NoColor = true
	}
}

func WithJSON(enabled bool) LoggerOption {
	return func(l *Logger) {
		l.JSON = enabled
	}
}

func WithNoTerminal(enabled bool) LoggerOption {
	return func(l *Logger) {
		l.NoTerminal = enabled
	}
}

func WithRotation(rotation *LoggerRotation) LoggerOption {
	return func(l *Logger) {
		l.Rotation = rotation
	}
}

func NewLogger(name string, level LogLevel, opts ...LoggerOption) *Logger {
	l := &Logger{
		mu:   &sync.Mutex{},
		exit: os.Exit,

		Name:  name,
		Level: level,

		TimeFormat: "2006-01-02 15:04:05",
		Rotation: &LoggerRotation{
			MaxSize:    128,
			MaxBackups: 5,
			MaxAge:     16,
			Compress:   false,
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	l.setupWriter()

	return l
}

// Discard returns a logger that drops every line.
func Discard() *Logger {
	return NewLogger("", Fatal+1, WithWriter(io.Discard))
}

func (l *Logger) setupWriter() {
	var writers []io.Writer

	switch {
	case l.writer != nil:
		writers = append(writers, l.writer)
	case !l.NoTerminal:
		writers = append(writers, os.Stderr)
	}

	if l.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.Rotation.MaxSize,
			MaxBackups: l.Rotation.MaxBackups,
			MaxAge:     l.Rotation.MaxAge,
			Compress:   l.Rotation.Compress,
		}
		writers = append(writers, fileWriter)
		// Escape sequences must not end up in the file
		l.NoColor = true
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	l.writer = io.MultiWriter(writers...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.Level {
		return
	}

	timestamp := time.Now().Format(l.TimeFormat)
	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   l.Name,
			Message:   formattedMsg,
		}

		jsonBytes, _ := json.Marshal(entry)
		fmt.Fprintf(l.writer, "%s\n", jsonBytes)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.Name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.Name)
		}

		if l.NoColor {
			fmt.Fprintf(l.writer, "%s %s\n", prefix, formattedMsg)
		} else {
			fmt.Fprintf(l.writer, "%s%s %s%s\n", level.color(), prefix, formattedMsg, colorReset)
		}
	}

	if level == Fatal {
		l.exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

// SetLevel changes the minimum level of this logger only, not of its parent.
func (l *Logger) SetLevel(level LogLevel) {
	l.Level = level
}

func (l *Logger) Named(name string) *Logger {
	if l.Name != "" {
		name = fmt.Sprintf("%s/%s", l.Name, name)
	}

	return &Logger{
		mu:     l.mu, // Share the same writer and its lock
		writer: l.writer,
		exit:   l.exit,

		Name:  name,
		Level: l.Level,

		TimeFormat: l.TimeFormat,
		File:       l.File,
		NoColor:    l.NoColor,
		NoTerminal: l.NoTerminal,
		JSON:       l.JSON,
		Rotation:   l.Rotation,
	}
}
