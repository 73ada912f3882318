// Package assistant enumerates the external AI command-line tools proompt can drive.
package assistant

import (
	"fmt"
	"strings"
)

// Assistant names one supported external AI CLI.
type Assistant string

const (
	Claude Assistant = "claude"
	Gemini Assistant = "gemini"
)

// Default is used when no settings layer selects an assistant.
const Default = Claude

// All lists the supported assistants in display order.
var All = []Assistant{Claude, Gemini}

var outputFileNames = map[Assistant]string{
	Claude: "CLAUDE.md",
	Gemini: "GEMINI.md",
}

// Valid reports whether a is one of the supported assistants.
func (a Assistant) Valid() bool {
	_, ok := outputFileNames[a]
	return ok
}

// OutputFileName returns the documentation file the assistant reads from a
// project, e.g. CLAUDE.md.
func (a Assistant) OutputFileName() string {
	return outputFileNames[a]
}

func (a Assistant) String() string { return string(a) }

// Names returns the supported assistant names joined with ", ".
func Names() string {
	names := make([]string, len(All))
	for i, a := range All {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// Parse converts s into an Assistant.
func Parse(s string) (Assistant, error) {
	a := Assistant(strings.TrimSpace(s))
	if !a.Valid() {
		return "", fmt.Errorf("invalid LLM CLI %q: valid options are %s", s, Names())
	}
	return a, nil
}

// ParseList parses a comma-separated list such as "claude, gemini". Every
// token must be a supported assistant and the list must not be empty.
func ParseList(s string) ([]Assistant, error) {
	tokens := strings.Split(s, ",")
	list := make([]Assistant, 0, len(tokens))
	for _, tok := range tokens {
		a := Assistant(strings.TrimSpace(tok))
		if !a.Valid() {
			return nil, fmt.Errorf("invalid output format %q: valid options are %s (comma-separated)", strings.TrimSpace(tok), Names())
		}
		list = append(list, a)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("output format must name at least one of %s", Names())
	}
	return list, nil
}

// ValidateList checks that list is non-empty and only holds supported assistants.
func ValidateList(list []Assistant) error {
	if len(list) == 0 {
		return fmt.Errorf("output format must name at least one of %s", Names())
	}
	for _, a := range list {
		if !a.Valid() {
			return fmt.Errorf("invalid output format %q: valid options are %s", string(a), Names())
		}
	}
	return nil
}

// Join renders list as "claude, gemini".
func Join(list []Assistant) string {
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// OutputFileNames maps list through the output filename table, keeping order.
func OutputFileNames(list []Assistant) []string {
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.OutputFileName()
	}
	return names
}
