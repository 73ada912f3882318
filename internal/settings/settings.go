// Package settings reads, writes and merges proompt's persisted configuration.
package settings

import (
	"fmt"

	"github.com/fsmiamoto/proompt/internal/assistant"
)

// Settings is the persisted document stored at either scope.
type Settings struct {
	LLMCli       assistant.Assistant   `json:"llmCli"`
	OutputFormat []assistant.Assistant `json:"outputFormat,omitempty"`
}

// Validate checks the document against the settings schema.
func (s Settings) Validate() error {
	if !s.LLMCli.Valid() {
		return fmt.Errorf("llmCli %q is not one of %s", s.LLMCli, assistant.Names())
	}
	if s.OutputFormat != nil {
		if err := assistant.ValidateList(s.OutputFormat); err != nil {
			return fmt.Errorf("outputFormat: %w", err)
		}
	}
	return nil
}

// EffectiveOutputFormat returns OutputFormat, or [LLMCli] when it is unset.
func (s Settings) EffectiveOutputFormat() []assistant.Assistant {
	if len(s.OutputFormat) > 0 {
		return append([]assistant.Assistant(nil), s.OutputFormat...)
	}
	return []assistant.Assistant{s.LLMCli}
}

// Override holds per-invocation values taken from -L/--llm-cli and
// -F/--output-format. Empty strings mean "not given".
type Override struct {
	LLMCli       string
	OutputFormat string // comma-separated
}

// Resolved is the fully merged configuration for one invocation.
type Resolved struct {
	LLMCli       assistant.Assistant
	OutputFormat []assistant.Assistant
}

// Validate checks the resolved-settings invariants.
func (r Resolved) Validate() error {
	if !r.LLMCli.Valid() {
		return fmt.Errorf("resolved llmCli %q is not one of %s", r.LLMCli, assistant.Names())
	}
	if err := assistant.ValidateList(r.OutputFormat); err != nil {
		return fmt.Errorf("resolved outputFormat: %w", err)
	}
	return nil
}

// OutputFileNames maps the resolved output format to documentation filenames.
func (r Resolved) OutputFileNames() []string {
	return assistant.OutputFileNames(r.OutputFormat)
}

// IOError reports a failure to persist settings.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to write settings to %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
