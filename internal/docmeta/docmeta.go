// Package docmeta records which commit generated documentation was last
// written at, and tracks whether documentation files changed during a run.
package docmeta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry records one documentation run.
type Entry struct {
	CommitHash string    `json:"commitHash"`
	Timestamp  time.Time `json:"timestamp"`
}

// Metadata is the content of .proompt/doc-metadata.json.
type Metadata struct {
	Project     *Entry           `json:"project,omitempty"`
	Directories map[string]Entry `json:"directories,omitempty"`
}

// Path returns the metadata file location for the project rooted at dir.
func Path(dir string) string {
	return filepath.Join(dir, ".proompt", "doc-metadata.json")
}

// Read loads the metadata for dir. A missing or corrupt file yields empty
// metadata.
func Read(dir string) Metadata {
	b, err := os.ReadFile(Path(dir))
	if err != nil {
		return Metadata{}
	}
	var meta Metadata
	if err := json.Unmarshal(b, &meta); err != nil {
		return Metadata{}
	}
	return meta
}

// Write replaces the metadata file for dir.
func Write(dir string, meta Metadata) error {
	path := Path(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to write documentation metadata: %w", err)
	}
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal documentation metadata: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write documentation metadata: %w", err)
	}
	return nil
}

// UpdateProject records hash as the commit the project docs were written at.
func UpdateProject(dir, hash string, now time.Time) error {
	meta := Read(dir)
	meta.Project = &Entry{CommitHash: hash, Timestamp: now.UTC()}
	return Write(dir, meta)
}

// UpdateDirectory records hash for target, stored relative to dir.
func UpdateDirectory(dir, target, hash string, now time.Time) error {
	key, err := relKey(dir, target)
	if err != nil {
		return err
	}
	meta := Read(dir)
	if meta.Directories == nil {
		meta.Directories = map[string]Entry{}
	}
	meta.Directories[key] = Entry{CommitHash: hash, Timestamp: now.UTC()}
	return Write(dir, meta)
}

// Project returns the project entry, if any.
func Project(dir string) (Entry, bool) {
	meta := Read(dir)
	if meta.Project == nil {
		return Entry{}, false
	}
	return *meta.Project, true
}

// Directory returns the entry for target, if any.
func Directory(dir, target string) (Entry, bool) {
	key, err := relKey(dir, target)
	if err != nil {
		return Entry{}, false
	}
	e, ok := Read(dir).Directories[key]
	return e, ok
}

func relKey(dir, target string) (string, error) {
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return "", fmt.Errorf("relative path for %q: %w", target, err)
	}
	return filepath.ToSlash(rel), nil
}
