// Package repopack packs a directory tree into a single XML snapshot that an
// assistant can read in one go.
package repopack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ExternalToolError wraps any failure of the packing step.
type ExternalToolError struct {
	Err error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("repository packing failed: %v", e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// alwaysExcluded holds patterns that are never packed. Generated assistant
// docs are excluded so a run does not feed on its own previous output.
var alwaysExcluded = []string{"CLAUDE.md", "**/CLAUDE.md", "GEMINI.md", "**/GEMINI.md"}

var skippedDirs = map[string]bool{
	".git":         true,
	".proompt":     true,
	"node_modules": true,
}

// binarySniffLen is how much of a file is inspected for NUL bytes.
const binarySniffLen = 8 << 10

// Options control one Pack call.
type Options struct {
	Root         string   // directory to pack
	Output       string   // snapshot file to write
	Include      []string // doublestar globs relative to Root; empty means everything
	Exclude      []string // doublestar globs relative to Root
	MaxFileBytes int64    // files larger than this are skipped; 0 means no limit
	UseGitignore bool     // honour Root/.gitignore
}

// Result summarizes a snapshot.
type Result struct {
	Output     string
	TotalFiles int
	TotalBytes int64
	Skipped    int
}

// Packer produces repository snapshots.
type Packer interface {
	Pack(ctx context.Context, opts Options) (Result, error)
}

// FSPacker walks the local filesystem.
type FSPacker struct{}

// Pack writes a snapshot of opts.Root to opts.Output.
func (FSPacker) Pack(ctx context.Context, opts Options) (Result, error) {
	files, skipped, err := collect(ctx, opts)
	if err != nil {
		return Result{}, &ExternalToolError{Err: err}
	}
	if len(files) == 0 {
		return Result{}, &ExternalToolError{Err: errors.New("no files were processed")}
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return Result{}, &ExternalToolError{Err: fmt.Errorf("create snapshot: %w", err)}
	}
	n, werr := writeSnapshot(f, opts.Root, files)
	if cerr := f.Close(); werr == nil && cerr != nil {
		werr = fmt.Errorf("close snapshot: %w", cerr)
	}
	if werr != nil {
		return Result{}, &ExternalToolError{Err: werr}
	}

	return Result{Output: opts.Output, TotalFiles: len(files), TotalBytes: n, Skipped: skipped}, nil
}

// collect returns the slash-separated relative paths to pack, sorted.
func collect(ctx context.Context, opts Options) ([]string, int, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, 0, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("%s is not a directory", root)
	}

	for _, p := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, 0, fmt.Errorf("invalid pattern %q", p)
		}
	}

	var gi *ignore.GitIgnore
	if opts.UseGitignore {
		path := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(path); err == nil {
			gi, err = ignore.CompileIgnoreFile(path)
			if err != nil {
				return nil, 0, fmt.Errorf("read .gitignore: %w", err)
			}
		}
	}

	outAbs, _ := filepath.Abs(opts.Output)
	exclude := append(append([]string{}, alwaysExcluded...), opts.Exclude...)

	var files []string
	skipped := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skippedDirs[d.Name()] || (gi != nil && gi.MatchesPath(rel+"/")) || matchAny(exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || path == outAbs {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if matchAny(exclude, rel) {
			return nil
		}
		if len(opts.Include) > 0 && !matchAny(opts.Include, rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if opts.MaxFileBytes > 0 && info.Size() > opts.MaxFileBytes {
			skipped++
			return nil
		}
		binary, err := isBinary(path)
		if err != nil {
			return err
		}
		if binary {
			skipped++
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, skipped, nil
}

// matchAny reports whether rel matches any pattern, either directly or as a
// path under a matching directory.
func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(strings.TrimSuffix(p, "/")+"/**", rel); ok {
			return true
		}
	}
	return false
}

func isBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	buf := make([]byte, binarySniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return bytes.IndexByte(buf[:n], 0) >= 0, nil
}

// writeSnapshot writes the XML document and returns the number of content
// bytes packed.
func writeSnapshot(w io.Writer, root string, files []string) (int64, error) {
	absRoot, _ := filepath.Abs(root)
	var total int64

	bw := &errWriter{w: w}
	bw.printf("<repository root=\"%s\">\n", attrEscaper.Replace(filepath.Base(absRoot)))
	bw.printf("<directory_structure>\n")
	for _, line := range tree(files) {
		bw.printf("%s\n", escape(line))
	}
	bw.printf("</directory_structure>\n")
	bw.printf("<files>\n")
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(rel)))
		if err != nil {
			return total, fmt.Errorf("read %s: %w", rel, err)
		}
		total += int64(len(data))
		bw.printf("<file path=\"%s\">\n", attrEscaper.Replace(rel))
		bw.printf("%s", escape(string(data)))
		if len(data) > 0 && data[len(data)-1] != '\n' {
			bw.printf("\n")
		}
		bw.printf("</file>\n")
	}
	bw.printf("</files>\n")
	bw.printf("</repository>\n")
	return total, bw.err
}

// tree renders files as an indented directory listing.
func tree(files []string) []string {
	var lines []string
	seen := map[string]bool{}
	for _, f := range files {
		parts := strings.Split(f, "/")
		for i := range parts {
			key := strings.Join(parts[:i+1], "/")
			if seen[key] {
				continue
			}
			seen[key] = true
			name := parts[i]
			if i < len(parts)-1 {
				name += "/"
			}
			lines = append(lines, strings.Repeat("  ", i)+name)
		}
	}
	return lines
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escape(s string) string {
	return textEscaper.Replace(s)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
