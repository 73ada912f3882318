package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runMain(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunList(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PROOMPT_HOME", home)

	code, out, errOut := runMain(t, "--list")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if !strings.Contains(out, "Available proompts:") || !strings.Contains(out, "document-project") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(home, ".proompt")); err != nil {
		t.Fatalf("expected proompt home to be created for the log file: %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	t.Setenv("PROOMPT_HOME", t.TempDir())
	code, _, errOut := runMain(t, "bogus")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, "Error: invalid command: bogus") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestRunValidationError(t *testing.T) {
	t.Setenv("PROOMPT_HOME", t.TempDir())
	code, _, errOut := runMain(t, "validate-plan")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	for _, want := range []string{
		"Error: invalid or missing arguments for command 'validate-plan':",
		"--plan-path: Path to implementation plan file",
		"Use 'proompt validate-plan --help' for more information.",
	} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestRunDryRunRecordsHistory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PROOMPT_HOME", home)
	t.Chdir(t.TempDir())

	code, out, errOut := runMain(t, "generate-plan", "draft.md", "--dry-run")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if !strings.Contains(out, "`draft.md`") {
		t.Fatalf("dry run output missing draft path:\n%s", out)
	}

	code, out, _ = runMain(t, "history")
	if code != 0 || !strings.Contains(out, "generate-plan") {
		t.Fatalf("history output (code %d):\n%s", code, out)
	}
}

func TestRunMissingAssistant(t *testing.T) {
	t.Setenv("PROOMPT_HOME", t.TempDir())
	t.Setenv("PATH", t.TempDir())
	t.Chdir(t.TempDir())

	code, _, errOut := runMain(t, "lyra")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, "Error: running command lyra:") {
		t.Fatalf("stderr = %q", errOut)
	}
}
