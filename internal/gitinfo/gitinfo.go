// Package gitinfo reads the state of the git repository a command runs in.
package gitinfo

import (
	"context"
	"os/exec"
	"strings"
)

// CommitHash returns the full hash of HEAD in dir. ok is false when git is
// not installed, dir is not inside a repository, or HEAD has no commits.
func CommitHash(ctx context.Context, dir string) (hash string, ok bool) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	hash = strings.TrimSpace(string(out))
	if hash == "" {
		return "", false
	}
	return hash, true
}

// Short returns the first seven characters of hash.
func Short(hash string) string {
	if len(hash) <= 7 {
		return hash
	}
	return hash[:7]
}

// DiffHint describes how to review changes since a previously documented
// commit. It is empty when there is nothing useful to say.
func DiffHint(previous, current string) string {
	if previous == "" || current == "" || previous == current {
		return ""
	}
	return "Documentation was last generated at commit " + Short(previous) +
		". Review what changed since then with `git diff " + previous + " HEAD` and focus your updates on those changes."
}
