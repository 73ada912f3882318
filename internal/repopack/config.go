package repopack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the optional per-project packing configuration.
const ConfigFileName = "pack.toml"

// DefaultMaxFileBytes skips files larger than 1 MiB unless configured.
const DefaultMaxFileBytes = 1 << 20

// Config is the content of .proompt/pack.toml.
type Config struct {
	Include      []string `toml:"include"`
	Exclude      []string `toml:"exclude"`
	MaxFileBytes int64    `toml:"max_file_bytes"`
	UseGitignore *bool    `toml:"use_gitignore"`
}

// DefaultConfig is used when no pack.toml exists.
func DefaultConfig() Config {
	use := true
	return Config{MaxFileBytes: DefaultMaxFileBytes, UseGitignore: &use}
}

// ConfigPath returns the pack.toml location for the project rooted at dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ".proompt", ConfigFileName)
}

// LoadConfig reads dir/.proompt/pack.toml. A missing file yields
// DefaultConfig; unknown keys are an error so typos do not go unnoticed.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()
	path := ConfigPath(dir)

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("parse %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.MaxFileBytes < 0 {
		return Config{}, fmt.Errorf("parse %s: max_file_bytes must not be negative", path)
	}
	return cfg, nil
}

// Options builds pack options for root, writing to output. extraExclude is
// appended to the configured exclude patterns.
func (c Config) Options(root, output string, extraExclude ...string) Options {
	use := c.UseGitignore == nil || *c.UseGitignore
	return Options{
		Root:         root,
		Output:       output,
		Include:      append([]string(nil), c.Include...),
		Exclude:      append(append([]string(nil), c.Exclude...), extraExclude...),
		MaxFileBytes: c.MaxFileBytes,
		UseGitignore: use,
	}
}

// HasConfig reports whether dir has a pack.toml.
func HasConfig(dir string) bool {
	_, err := os.Stat(ConfigPath(dir))
	return err == nil
}
