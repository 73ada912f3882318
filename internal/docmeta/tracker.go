package docmeta

import (
	"os"
	"path/filepath"
	"time"
)

// FileStatus describes one documentation file after a run.
type FileStatus struct {
	Exists   bool
	Modified bool
	ModTime  time.Time
}

// Check stats every name inside each directory in dirs and reports whether it
// was written after start. Keys are the joined paths.
func Check(start time.Time, dirs []string, names []string) map[string]FileStatus {
	out := make(map[string]FileStatus, len(dirs)*len(names))
	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil {
				out[path] = FileStatus{}
				continue
			}
			out[path] = FileStatus{
				Exists:   true,
				Modified: info.ModTime().After(start),
				ModTime:  info.ModTime(),
			}
		}
	}
	return out
}

// AnyModified reports whether any name in any of dirs changed after start.
func AnyModified(start time.Time, dirs []string, names []string) bool {
	for _, st := range Check(start, dirs, names) {
		if st.Modified {
			return true
		}
	}
	return false
}

// AllExist reports whether every name already exists in dir.
func AllExist(dir string, names []string) bool {
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return len(names) > 0
}
