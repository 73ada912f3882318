package gitinfo

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestCommitHashOutsideRepo(t *testing.T) {
	if _, ok := CommitHash(context.Background(), t.TempDir()); ok {
		t.Fatal("expected ok=false outside a repository")
	}
}

func TestCommitHashInRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(cmd.Environ(),
			"GIT_AUTHOR_NAME=t", "GIT_AUTHOR_EMAIL=t@example.com",
			"GIT_COMMITTER_NAME=t", "GIT_COMMITTER_EMAIL=t@example.com")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	run("commit", "-q", "--allow-empty", "-m", "init")

	hash, ok := CommitHash(context.Background(), dir)
	if !ok {
		t.Fatal("expected a commit hash")
	}
	if len(hash) < 40 {
		t.Errorf("hash %q looks truncated", hash)
	}
}

func TestShort(t *testing.T) {
	if Short("0123456789abcdef") != "0123456" {
		t.Errorf("Short() = %q", Short("0123456789abcdef"))
	}
	if Short("abc") != "abc" {
		t.Errorf("Short() should keep short input")
	}
}

func TestDiffHint(t *testing.T) {
	if DiffHint("", "abc") != "" || DiffHint("abc", "abc") != "" {
		t.Error("expected empty hint")
	}
	got := DiffHint("1111111aaaa", "2222222bbbb")
	if !strings.Contains(got, "git diff 1111111aaaa HEAD") || !strings.Contains(got, "1111111") {
		t.Errorf("DiffHint() = %q", got)
	}
}
