package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Name errors
	ErrInvalidName     = errors.New("invalid resource name")
	ErrInvalidTemplate = errors.New("invalid command template")
	ErrInvalidScaling  = errors.New("invalid scaling spec")

	// Session errors
	ErrTransport        = errors.New("remote session failed")
	ErrSentinelMismatch = errors.New("sentinel boundary count mismatch")

	// Output errors
	ErrParse = errors.New("unexpected platform output")

	// Config errors
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrServerNotFound = errors.New("server not found")
)

// InvalidNameError reports a resource name that failed syntax validation.
// It is raised before any remote interaction happens.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid resource name: %q", e.Name)
}

// Is makes errors.Is(err, ErrInvalidName) hold.
func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}

// TransportError reports a failed remote session. One session serves a whole
// batch, so a TransportError fails every command of that batch.
type TransportError struct {
	// ExitCode is the remote exit status, or -1 when the session never ran.
	ExitCode int
	Stderr   string
	Err      error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "remote session failed (exit code %d)", e.ExitCode)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		b.WriteString(": ")
		b.WriteString(stderr)
	}
	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) hold.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ParseError reports platform output that does not have the shape expected for
// its subcommand. The remote command itself succeeded.
type ParseError struct {
	Command string
	Line    string
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("parse %s output: %s", e.Command, e.Reason)
	}
	return fmt.Sprintf("parse %s output: %s: %q", e.Command, e.Reason, e.Line)
}

// Is makes errors.Is(err, ErrParse) hold.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
