package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/hourlog/internal/logger"
)

// Error kinds raised by the time table engine. Match them with errors.Is.
var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvertedRange    = errors.New("inverted date range")
	ErrEmptyInput       = errors.New("empty input")
	ErrSchemaMismatch   = errors.New("schema mismatch")
	ErrRowArityMismatch = errors.New("row arity mismatch")
	ErrInvalidHour      = errors.New("invalid hour")
)

// Error carries a kind plus the line (1-based, 0 when not tied to a line) and a
// human-readable message.
type Error struct {
	Kind error
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// New builds an Error of the given kind.
func New(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// AtLine builds an Error of the given kind tied to an input line.
func AtLine(kind error, line int, format string, args ...interface{}) error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// LineOf returns the input line recorded on err, or 0.
func LineOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Line
	}
	return 0
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
