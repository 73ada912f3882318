package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsmiamoto/proompt/internal/assistant"
	"github.com/fsmiamoto/proompt/internal/settings"
)

// fakeAssistant puts an executable shell script named name on PATH.
func fakeAssistant(t *testing.T, name, script string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func testExecutor(stdout *bytes.Buffer) *Executor {
	return &Executor{Stdin: strings.NewReader(""), Stdout: stdout, Stderr: stdout}
}

func resolved(a assistant.Assistant) settings.Resolved {
	return settings.Resolved{LLMCli: a, OutputFormat: []assistant.Assistant{a}}
}

func TestInvocation(t *testing.T) {
	name, args, err := Invocation(assistant.Claude, "hello")
	if err != nil || name != "claude" || len(args) != 1 || args[0] != "hello" {
		t.Errorf("claude invocation = %q %v %v", name, args, err)
	}

	name, args, err = Invocation(assistant.Gemini, "hello")
	if err != nil || name != "gemini" || len(args) != 2 || args[0] != "-i" || args[1] != "hello" {
		t.Errorf("gemini invocation = %q %v %v", name, args, err)
	}

	_, _, err = Invocation("codex", "hello")
	var unsupported *UnsupportedAssistantError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedAssistantError, got %v", err)
	}
	if !strings.Contains(err.Error(), "codex") {
		t.Errorf("error should name the value: %v", err)
	}
}

func TestExecuteSuccess(t *testing.T) {
	fakeAssistant(t, "claude", `printf '%s' "$1"`)

	var out bytes.Buffer
	if err := testExecutor(&out).Execute(context.Background(), "the prompt", resolved(assistant.Claude)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "the prompt" {
		t.Errorf("child saw %q, want the prompt as its argument", out.String())
	}
}

func TestExecuteGeminiFlag(t *testing.T) {
	fakeAssistant(t, "gemini", `printf '%s|%s' "$1" "$2"`)

	var out bytes.Buffer
	if err := testExecutor(&out).Execute(context.Background(), "p", resolved(assistant.Gemini)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "-i|p" {
		t.Errorf("child saw %q, want -i|p", out.String())
	}
}

func TestExecuteNonZeroExit(t *testing.T) {
	fakeAssistant(t, "gemini", "exit 2")

	var out bytes.Buffer
	err := testExecutor(&out).Execute(context.Background(), "p", resolved(assistant.Gemini))
	var childErr *ChildProcessError
	if !errors.As(err, &childErr) {
		t.Fatalf("expected ChildProcessError, got %v", err)
	}
	if childErr.Code != 2 {
		t.Errorf("Code = %d, want 2", childErr.Code)
	}
	if !strings.Contains(err.Error(), "2") || !strings.Contains(err.Error(), "gemini") {
		t.Errorf("message should contain code and assistant: %v", err)
	}
}

func TestExecuteSpawnError(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	var out bytes.Buffer
	err := testExecutor(&out).Execute(context.Background(), "p", resolved(assistant.Claude))
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("expected SpawnError, got %T: %v", err, err)
	}
}

func TestExecuteUnsupported(t *testing.T) {
	var out bytes.Buffer
	err := testExecutor(&out).Execute(context.Background(), "p", settings.Resolved{LLMCli: "codex"})
	var unsupported *UnsupportedAssistantError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedAssistantError, got %v", err)
	}
}
