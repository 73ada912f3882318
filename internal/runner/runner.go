// Package runner launches the configured assistant CLI with a rendered prompt.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"

	"github.com/fsmiamoto/proompt/internal/assistant"
	"github.com/fsmiamoto/proompt/internal/settings"
)

// UnsupportedAssistantError is returned for an llmCli value the runner does
// not know how to launch.
type UnsupportedAssistantError struct {
	Value string
}

func (e *UnsupportedAssistantError) Error() string {
	return fmt.Sprintf("unsupported LLM CLI: %s", e.Value)
}

// SpawnError is returned when the assistant process could not be started.
type SpawnError struct {
	Assistant assistant.Assistant
	Err       error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Assistant, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ChildProcessError is returned when the assistant exits with a non-zero
// status. Code is -1 when the process was terminated by a signal.
type ChildProcessError struct {
	Assistant assistant.Assistant
	Code      int
}

func (e *ChildProcessError) Error() string {
	return fmt.Sprintf("%s command failed with exit code %d", e.Assistant, e.Code)
}

// Invocation returns the program and arguments used to start a with prompt.
// claude takes the prompt as its only argument; gemini needs -i to stay
// interactive after the initial prompt.
func Invocation(a assistant.Assistant, prompt string) (string, []string, error) {
	switch a {
	case assistant.Claude:
		return "claude", []string{prompt}, nil
	case assistant.Gemini:
		return "gemini", []string{"-i", prompt}, nil
	default:
		return "", nil, &UnsupportedAssistantError{Value: string(a)}
	}
}

// Executor runs one interactive assistant session. The child shares the
// executor's stdio; nothing it prints is read or transformed.
type Executor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// New returns an Executor wired to the process's own stdio.
func New(logger *slog.Logger) *Executor {
	return &Executor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Execute starts the assistant selected by res.LLMCli with prompt and waits
// for it to exit. There is no timeout.
func (e *Executor) Execute(ctx context.Context, prompt string, res settings.Resolved) error {
	name, args, err := Invocation(res.LLMCli, prompt)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	// The terminal delivers Ctrl-C to the whole foreground process group.
	// The assistant decides what an interrupt means; we keep waiting for it.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	if e.Logger != nil {
		e.Logger.Debug("starting assistant", "assistant", res.LLMCli, "prompt_bytes", len(prompt))
	}

	if err := cmd.Start(); err != nil {
		return &SpawnError{Assistant: res.LLMCli, Err: err}
	}

	err = cmd.Wait()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ChildProcessError{Assistant: res.LLMCli, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("waiting for %s: %w", res.LLMCli, err)
}
