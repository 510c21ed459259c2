package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Level is the severity of a log line
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// output is shared by every logger derived from the same root so that
// redirecting it (e.g. while the terminal browser owns the screen) applies
// everywhere
type output struct {
	mu sync.Mutex
	w  io.Writer
}

// Logger writes component-tagged lines; Debug and Info only when verbose
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	out            *output
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger writing to stderr
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		out:            &output{w: os.Stderr},
	}
}

// NewWithCallback creates a new logger whose verbosity is read from verboseCheck
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{out: &output{w: io.Discard}}
}

// WithComponent creates a logger with a specific component name sharing
// this logger's output and verbosity
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		out:            l.out,
	}
}

// SetOutput redirects this logger and every logger sharing its output
func (l *Logger) SetOutput(w io.Writer) {
	l.out.mu.Lock()
	l.out.w = w
	l.out.mu.Unlock()
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.write(LevelDebug, msg, nil, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.write(LevelInfo, msg, nil, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.write(LevelWarn, msg, nil, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.write(LevelError, msg, nil, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.write(LevelDebug, msg, fields, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.write(LevelInfo, msg, fields, args...)
	}
}

// WarnWithFields logs a warning with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.write(LevelWarn, msg, fields, args...)
}

// ErrorWithFields logs an error with structured fields
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.write(LevelError, msg, fields, args...)
}

func (l *Logger) write(level Level, msg string, fields []Field, args ...interface{}) {
	component := l.component
	if component == "" {
		component = "main"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] ", time.Now().Format("15:04:05.000"), level, component)
	if len(args) > 0 {
		fmt.Fprintf(&b, msg, args...)
	} else {
		b.WriteString(msg)
	}
	if len(fields) > 0 {
		b.WriteString(" [")
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%v", field.Key, field.Value)
		}
		b.WriteByte(']')
	}
	b.WriteByte('\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	// A failed log write has nowhere else to go
	_, _ = io.WriteString(l.out.w, b.String())
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

func Section(id fmt.Stringer) Field {
	return Field{Key: "section", Value: id.String()}
}
