package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fsmiamoto/proompt/internal/settings"
)

// writeCompletion prints the completion script for shell. Unknown shells get
// the bash script.
func writeCompletion(root *cobra.Command, w io.Writer, shell string) error {
	switch shell {
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	default:
		return root.GenBashCompletionV2(w, true)
	}
}

// rcFile returns the shell init file and the line that loads completions.
func rcFile(home, shell string) (string, string) {
	switch shell {
	case "zsh":
		return filepath.Join(home, ".zshrc"), "source <(proompt --completion)"
	case "fish":
		return filepath.Join(home, ".config", "fish", "config.fish"), "proompt --completion | source"
	default:
		return filepath.Join(home, ".bashrc"), "source <(proompt --completion)"
	}
}

func setupCompletion(app *App) error {
	p := app.printer()
	homeDir := app.HomeDir
	if homeDir == nil {
		homeDir = settings.HomeDir
	}
	home, err := homeDir()
	if err != nil {
		return err
	}

	path, line := rcFile(home, shellName())
	if err := appendOnce(path, line); err != nil {
		p.Error("Failed to setup completion: %v", err)
		p.Println("You can manually add this to your shell config:")
		p.Println("  %s", line)
		return err
	}

	p.Success("Shell completion has been set up in %s! Please restart your shell or run:", path)
	p.Println("  source %s", path)
	return nil
}

// appendOnce appends line to path unless the file already contains it.
func appendOnce(path, line string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if strings.Contains(string(data), line) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	prefix := "\n"
	if len(data) == 0 || strings.HasSuffix(string(data), "\n") {
		prefix = ""
	}
	if _, err := fmt.Fprintf(f, "%s# proompt shell completion\n%s\n", prefix, line); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
