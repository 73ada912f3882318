package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Scope selects which settings file to operate on.
type Scope string

const (
	Global  Scope = "global"
	Project Scope = "project"
)

const (
	dirName  = ".proompt"
	fileName = "settings.json"
)

// Document is the result of reading one scope.
type Document struct {
	Settings   *Settings
	FileExists bool
	FilePath   string
}

// Store locates and accesses the settings files. HomeDir and WorkDir are
// resolved on every call when empty, so a chdir done by --cwd is honoured.
type Store struct {
	HomeDir string
	WorkDir string
	Logger  *slog.Logger
}

// NewStore returns a Store that uses the process home and working directories.
func NewStore(logger *slog.Logger) *Store {
	return &Store{Logger: logger}
}

// Path returns the settings file path for scope.
func (s *Store) Path(scope Scope) (string, error) {
	base, err := s.baseDir(scope)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, dirName, fileName), nil
}

func (s *Store) baseDir(scope Scope) (string, error) {
	switch scope {
	case Global:
		if s.HomeDir != "" {
			return s.HomeDir, nil
		}
		return HomeDir()
	case Project:
		if s.WorkDir != "" {
			return s.WorkDir, nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	default:
		return "", fmt.Errorf("unknown settings scope %q", scope)
	}
}

// HomeDir returns $PROOMPT_HOME when set, else the user's home directory.
func HomeDir() (string, error) {
	if h := os.Getenv("PROOMPT_HOME"); h != "" {
		return h, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return h, nil
}

// Read loads the settings for scope. A missing, unreadable, malformed or
// schema-invalid file yields FileExists=false and Settings=nil; it never
// returns an error to the caller.
func (s *Store) Read(scope Scope) Document {
	path, err := s.Path(scope)
	if err != nil {
		s.warn("could not locate settings file", "scope", scope, "err", err)
		return Document{}
	}
	doc := Document{FilePath: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.warn("could not read settings file, using defaults", "path", path, "err", err)
		}
		return doc
	}

	var st Settings
	if err := json.Unmarshal(data, &st); err != nil {
		s.warn("could not parse settings file, using defaults", "path", path, "err", err)
		return doc
	}
	if err := st.Validate(); err != nil {
		s.warn("invalid settings file, using defaults", "path", path, "err", err)
		return doc
	}

	doc.Settings = &st
	doc.FileExists = true
	return doc
}

// Write validates st and atomically replaces the scope's settings file.
func (s *Store) Write(scope Scope, st Settings) error {
	if err := st.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	path, err := s.Path(scope)
	if err != nil {
		return &IOError{Path: string(scope), Err: err}
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func (s *Store) warn(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Warn(msg, args...)
	}
}
