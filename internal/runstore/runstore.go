// Package runstore records every proompt invocation under a runs root so past
// prompts can be listed and replayed.
package runstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusDryRun    = "dry-run"
)

const (
	metaFile   = "meta.json"
	promptFile = "effective-prompt.md"
)

// Meta is persisted as meta.json in each run directory.
type Meta struct {
	RunID        string    `json:"run_id"`
	Command      string    `json:"command"`
	LLMCli       string    `json:"llm_cli"`
	OutputFormat []string  `json:"output_format"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at,omitempty"`
	Status       string    `json:"status"`
	ExitCode     int       `json:"exit_code"`
	Error        string    `json:"error,omitempty"`
	SnapshotPath string    `json:"snapshot_path,omitempty"`
	WorkDir      string    `json:"work_dir"`
}

// Duration is zero while the run has not ended.
func (m Meta) Duration() time.Duration {
	if m.EndedAt.IsZero() {
		return 0
	}
	return m.EndedAt.Sub(m.StartedAt)
}

// Run is one run directory.
type Run struct {
	ID  string
	Dir string
}

// Saved is a run loaded back from disk.
type Saved struct {
	Meta   Meta
	Prompt string
}

// Create makes a new, uniquely named run directory under root.
func Create(root string) (*Run, error) {
	if root == "" {
		return nil, errors.New("runs root cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create runs root: %w", err)
	}
	id := uuid.NewString()
	dir := filepath.Join(root, id)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	return &Run{ID: id, Dir: dir}, nil
}

// WritePrompt stores the rendered prompt text.
func (r *Run) WritePrompt(text string) error {
	if err := os.WriteFile(filepath.Join(r.Dir, promptFile), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}
	return nil
}

// WriteMeta replaces meta.json. The run id is always taken from r.
func (r *Run) WriteMeta(meta Meta) error {
	meta.RunID = r.ID
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.Dir, metaFile), append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}

// ReadMeta parses dir/meta.json.
func ReadMeta(dir string) (Meta, error) {
	b, err := os.ReadFile(filepath.Join(dir, metaFile))
	if err != nil {
		return Meta{}, fmt.Errorf("read meta: %w", err)
	}
	var meta Meta
	if err := json.Unmarshal(b, &meta); err != nil {
		return Meta{}, fmt.Errorf("parse meta: %w", err)
	}
	return meta, nil
}

// List returns the metadata of every run with a readable meta.json, newest
// first. A missing root is an empty history.
func List(root string) ([]Meta, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading runs directory: %w", err)
	}

	var runs []Meta
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := ReadMeta(filepath.Join(root, e.Name()))
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// Resolve finds the single run directory whose name starts with prefix.
func Resolve(root, prefix string) (string, error) {
	if prefix == "" {
		return "", errors.New("run id cannot be empty")
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("no run found matching %q", prefix)
		}
		return "", fmt.Errorf("reading runs directory: %w", err)
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			matches = append(matches, e.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no run found matching %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous run id %q matches %d runs:\n  %s",
			prefix, len(matches), strings.Join(matches, "\n  "))
	}
}

// Load reads a run by id or unique id prefix. The prompt is optional.
func Load(root, id string) (*Saved, error) {
	resolved, err := Resolve(root, id)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(root, resolved)
	meta, err := ReadMeta(dir)
	if err != nil {
		return nil, err
	}
	saved := &Saved{Meta: meta}
	if data, err := os.ReadFile(filepath.Join(dir, promptFile)); err == nil {
		saved.Prompt = string(data)
	}
	return saved, nil
}
