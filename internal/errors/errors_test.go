package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		line    int
		message string
	}{
		{
			name:    "schema mismatch without line",
			err:     New(ErrSchemaMismatch, "expected columns: %s", "Date,Weekday"),
			kind:    ErrSchemaMismatch,
			line:    0,
			message: "schema mismatch: expected columns: Date,Weekday",
		},
		{
			name:    "invalid hour on a line",
			err:     AtLine(ErrInvalidHour, 2, "line %d: %s", 2, "25:00"),
			kind:    ErrInvalidHour,
			line:    2,
			message: "invalid hour: line 2: 25:00",
		},
		{
			name:    "wrapped error keeps its kind",
			err:     fmt.Errorf("import failed: %w", AtLine(ErrRowArityMismatch, 7, "found 5 columns")),
			kind:    ErrRowArityMismatch,
			line:    7,
			message: "import failed: row arity mismatch: found 5 columns",
		},
		{
			name:    "empty message falls back to kind",
			err:     &Error{Kind: ErrEmptyInput},
			kind:    ErrEmptyInput,
			message: "empty input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.kind)
			}
			if got := LineOf(tt.err); got != tt.line {
				t.Errorf("LineOf() = %d, want %d", got, tt.line)
			}
			if tt.err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.message)
			}
		})
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	err := New(ErrInvalidDateRange, "bad start")
	if errors.Is(err, ErrInvertedRange) {
		t.Error("ErrInvalidDateRange should not match ErrInvertedRange")
	}
}

func TestLineOf_PlainError(t *testing.T) {
	if got := LineOf(errors.New("plain")); got != 0 {
		t.Errorf("LineOf(plain) = %d, want 0", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "kind error",
			err:      New(ErrInvertedRange, "start %s is after end %s", "2025-02-01", "2025-01-01"),
			expected: "Error: inverted date range: start 2025-02-01 is after end 2025-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "simple message",
			format:   "something went wrong",
			args:     nil,
			expected: "Error: something went wrong",
		},
		{
			name:     "formatted message with multiple args",
			format:   "line %d: %s",
			args:     []interface{}{3, "bad hour"},
			expected: "Error: line 3: bad hour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, result, tt.expected)
			}
		})
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_NilError$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

// TestFatalf tests the Fatalf function using exec helper process
func TestFatalf(t *testing.T) {
	if os.Getenv("GO_TEST_FATALF") == "1" {
		Fatalf("line %d: %s", 4, "bad row")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatalf$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatalf() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: line 4: bad row") {
			t.Errorf("Fatalf() stderr = %q, want to contain %q", stderr.String(), "Error: line 4: bad row")
		}
	} else {
		t.Errorf("Fatalf() did not exit with error: %v", err)
	}
}
