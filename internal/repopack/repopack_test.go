package repopack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func packString(t *testing.T, opts Options) (Result, string) {
	t.Helper()
	res, err := FSPacker{}.Pack(context.Background(), opts)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	b, err := os.ReadFile(opts.Output)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	return res, string(b)
}

func TestPackIncludesSourceAndSkipsGeneratedDocs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "pkg/util.go", "package pkg\n\nfunc A() bool { return 1 < 2 }\n")
	writeFile(t, root, "CLAUDE.md", "old docs\n")
	writeFile(t, root, "pkg/GEMINI.md", "old docs\n")
	writeFile(t, root, ".git/HEAD", "ref: refs/heads/main\n")
	writeFile(t, root, ".proompt/settings.json", "{}\n")

	out := filepath.Join(t.TempDir(), "snap.xml")
	res, snap := packString(t, Options{Root: root, Output: out, UseGitignore: true})

	if res.TotalFiles != 2 {
		t.Fatalf("expected 2 files, got %d\n%s", res.TotalFiles, snap)
	}
	if !strings.Contains(snap, `<file path="main.go">`) || !strings.Contains(snap, `<file path="pkg/util.go">`) {
		t.Fatalf("snapshot is missing source files:\n%s", snap)
	}
	if !strings.Contains(snap, "return 1 &lt; 2") {
		t.Fatalf("expected escaped content, got:\n%s", snap)
	}
	for _, unwanted := range []string{"CLAUDE.md", "GEMINI.md", "HEAD", "settings.json"} {
		if strings.Contains(snap, unwanted) {
			t.Fatalf("snapshot should not mention %s:\n%s", unwanted, snap)
		}
	}
	if !strings.Contains(snap, "<directory_structure>\nmain.go\npkg/\n  util.go\n</directory_structure>") {
		t.Fatalf("unexpected directory structure:\n%s", snap)
	}
}

func TestPackHonoursGitignoreAndPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "build/\n*.log\n")
	writeFile(t, root, "build/out.txt", "artifact\n")
	writeFile(t, root, "debug.log", "noise\n")
	writeFile(t, root, "src/a.go", "package src\n")
	writeFile(t, root, "src/a_test.go", "package src\n")
	writeFile(t, root, "docs/readme.md", "# docs\n")

	out := filepath.Join(t.TempDir(), "snap.xml")
	_, snap := packString(t, Options{
		Root:         root,
		Output:       out,
		Include:      []string{"src/**"},
		Exclude:      []string{"**/*_test.go"},
		UseGitignore: true,
	})

	if !strings.Contains(snap, `path="src/a.go"`) {
		t.Fatalf("expected src/a.go:\n%s", snap)
	}
	for _, unwanted := range []string{"out.txt", "debug.log", "a_test.go", "readme.md"} {
		if strings.Contains(snap, unwanted) {
			t.Fatalf("snapshot should not contain %s:\n%s", unwanted, snap)
		}
	}
}

func TestPackWithoutGitignoreKeepsIgnoredFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\n")
	writeFile(t, root, "debug.log", "noise\n")

	out := filepath.Join(t.TempDir(), "snap.xml")
	_, snap := packString(t, Options{Root: root, Output: out})
	if !strings.Contains(snap, `path="debug.log"`) {
		t.Fatalf("expected debug.log when gitignore is disabled:\n%s", snap)
	}
}

func TestPackSkipsBinaryAndLargeFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ok.txt", "fine\n")
	writeFile(t, root, "blob.bin", "abc\x00def")
	writeFile(t, root, "big.txt", strings.Repeat("x", 64))

	out := filepath.Join(t.TempDir(), "snap.xml")
	res, snap := packString(t, Options{Root: root, Output: out, MaxFileBytes: 32})
	if res.TotalFiles != 1 || res.Skipped != 2 {
		t.Fatalf("expected 1 file and 2 skipped, got %+v", res)
	}
	if strings.Contains(snap, "blob.bin") || strings.Contains(snap, "big.txt") {
		t.Fatalf("unexpected skipped file in snapshot:\n%s", snap)
	}
}

func TestPackEmptyTreeFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "CLAUDE.md", "only generated docs\n")

	_, err := FSPacker{}.Pack(context.Background(), Options{Root: root, Output: filepath.Join(t.TempDir(), "snap.xml")})
	var toolErr *ExternalToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ExternalToolError, got %v", err)
	}
	if !strings.Contains(err.Error(), "no files were processed") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestPackInvalidPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a\n")

	_, err := FSPacker{}.Pack(context.Background(), Options{Root: root, Output: filepath.Join(t.TempDir(), "snap.xml"), Exclude: []string{"[abc"}})
	if err == nil || !strings.Contains(err.Error(), "invalid pattern") {
		t.Fatalf("expected invalid pattern error, got %v", err)
	}
}

func TestPackCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FSPacker{}.Pack(ctx, Options{Root: root, Output: filepath.Join(t.TempDir(), "snap.xml")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxFileBytes != DefaultMaxFileBytes {
		t.Fatalf("unexpected max bytes %d", cfg.MaxFileBytes)
	}
	opts := cfg.Options("root", "out.xml", "plans/**")
	if !opts.UseGitignore {
		t.Fatalf("gitignore should be on by default")
	}
	if len(opts.Exclude) != 1 || opts.Exclude[0] != "plans/**" {
		t.Fatalf("unexpected exclude list %v", opts.Exclude)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".proompt/pack.toml", `
include = ["src/**"]
exclude = ["vendor/**", "*.pb.go"]
max_file_bytes = 2048
use_gitignore = false
`)
	if !HasConfig(dir) {
		t.Fatalf("expected HasConfig to report the file")
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opts := cfg.Options(dir, "out.xml")
	if opts.UseGitignore {
		t.Fatalf("gitignore should be disabled")
	}
	if opts.MaxFileBytes != 2048 || len(opts.Include) != 1 || len(opts.Exclude) != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".proompt/pack.toml", "exclude = []\nmax_bytes = 10\n")

	_, err := LoadConfig(dir)
	if err == nil || !strings.Contains(err.Error(), "max_bytes") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestTempPath(t *testing.T) {
	a, err := TempPath("proompt-repo")
	if err != nil {
		t.Fatalf("temp path: %v", err)
	}
	b, _ := TempPath("proompt-repo")
	if a == b {
		t.Fatalf("temp paths should be unique")
	}
	if filepath.Dir(a) != filepath.Clean(os.TempDir()) {
		t.Fatalf("expected path in temp dir, got %s", a)
	}
	base := filepath.Base(a)
	if !strings.HasPrefix(base, "proompt-repo-") || !strings.HasSuffix(base, ".xml") {
		t.Fatalf("unexpected name %s", base)
	}
}
