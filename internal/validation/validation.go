// Package validation describes user-input errors tied to specific flags or
// positional arguments.
package validation

import (
	"fmt"
	"strings"
)

// Issue is one problem with one flag or positional argument.
type Issue struct {
	Flag    string // e.g. "-i, --start-path" or "<plan-path>"
	Message string
}

// Error collects the issues found while validating a single invocation.
type Error struct {
	Command string
	Issues  []Issue
}

// New returns an Error with a single issue.
func New(flag, format string, args ...any) *Error {
	return &Error{Issues: []Issue{{Flag: flag, Message: fmt.Sprintf(format, args...)}}}
}

// Add appends an issue.
func (e *Error) Add(flag, format string, args ...any) {
	e.Issues = append(e.Issues, Issue{Flag: flag, Message: fmt.Sprintf(format, args...)})
}

// Empty reports whether no issues were recorded.
func (e *Error) Empty() bool {
	return e == nil || len(e.Issues) == 0
}

// Error implements the error interface.
func (e *Error) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Flag + ": " + is.Message
	}
	msg := strings.Join(parts, "; ")
	if e.Command != "" {
		return fmt.Sprintf("invalid arguments for command %q: %s", e.Command, msg)
	}
	return "invalid arguments: " + msg
}

// Report renders the field-by-field listing shown to the user.
func (e *Error) Report() string {
	var b strings.Builder
	if e.Command != "" {
		fmt.Fprintf(&b, "Error: invalid or missing arguments for command '%s':\n", e.Command)
	} else {
		b.WriteString("Error: invalid arguments:\n")
	}
	for _, is := range e.Issues {
		fmt.Fprintf(&b, "  %s: %s\n", is.Flag, is.Message)
	}
	if e.Command != "" {
		fmt.Fprintf(&b, "\nUse 'proompt %s --help' for more information.\n", e.Command)
	}
	return b.String()
}
