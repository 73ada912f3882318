package repopack

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TempPath returns a fresh snapshot path in the system temp directory,
// <tmp>/<prefix>-<unix millis>-<16 hex chars>.xml. The file is not created.
func TempPath(prefix string) (string, error) {
	if prefix == "" {
		prefix = "proompt-repo"
	}
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate temp file name: %w", err)
	}
	name := fmt.Sprintf("%s-%d-%s.xml", prefix, time.Now().UnixMilli(), hex.EncodeToString(buf))
	return filepath.Join(os.TempDir(), name), nil
}
