// Package cli builds the proompt command tree on top of cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fsmiamoto/proompt/internal/proompts"
	"github.com/fsmiamoto/proompt/internal/settings"
	"github.com/fsmiamoto/proompt/internal/term"
	"github.com/fsmiamoto/proompt/internal/tui"
	"github.com/fsmiamoto/proompt/internal/validation"
)

// App holds what the command tree needs at run time.
type App struct {
	Registry *proompts.Registry
	Env      *proompts.Env
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger

	// Pick shows the interactive picker; nil uses tui.Run.
	Pick func(items []tui.Item) (string, error)
	// HomeDir locates shell rc files; nil uses settings.HomeDir.
	HomeDir func() (string, error)
}

func (a *App) printer() *term.Printer {
	if a.Env != nil && a.Env.Printer != nil {
		return a.Env.Printer
	}
	return term.NewPrinter(a.Stdout, a.Stderr)
}

type rootOptions struct {
	cwd             string
	list            bool
	completion      bool
	setupCompletion bool
	pick            bool
	setLLMCli       string
	setOutputFormat string
}

// NewRootCommand returns the proompt command with one subcommand per module.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "proompt",
		Short:         "CLI tool for running AI prompts with structure and repeatability",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("invalid command: %s\nSee --help for a list of available commands", strings.Join(args, " "))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return changeDir(app, opts.cwd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, app, opts)
		},
	}
	root.SetVersionTemplate(versionTemplate)
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.cwd, "cwd", "C", "", "change working directory before running command")
	_ = root.MarkPersistentFlagDirname("cwd")

	f := root.Flags()
	f.BoolVarP(&opts.list, "list", "l", false, "list all available proompts")
	f.BoolVar(&opts.completion, "completion", false, "output completion script for shell")
	f.BoolVar(&opts.setupCompletion, "setup-completion", false, "setup shell completion")
	f.BoolVar(&opts.pick, "pick", false, "pick a proompt interactively")
	f.StringVar(&opts.setLLMCli, "set-llm-cli", "", "set the global default LLM CLI (claude|gemini)")
	f.StringVar(&opts.setOutputFormat, "set-output-format", "", "set the global output format (claude,gemini or any combination)")

	for _, m := range app.Registry.All() {
		root.AddCommand(newModuleCommand(app, m))
	}
	root.AddCommand(newHistoryCommand(app))
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCommand(app)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// PrintError writes err the way the user expects to see it: validation
// errors as a per-flag listing, everything else on one line.
func PrintError(w io.Writer, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		fmt.Fprint(w, verr.Report())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func changeDir(app *App, dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to change directory to %s: %w", dir, err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	fmt.Fprintf(app.Stdout, "Changed working directory to: %s\n", wd)
	if app.Logger != nil {
		app.Logger.Debug("working directory changed", "dir", wd)
	}
	return nil
}

func runRoot(cmd *cobra.Command, app *App, opts *rootOptions) error {
	switch {
	case opts.completion:
		return writeCompletion(cmd.Root(), app.Stdout, shellName())
	case opts.setupCompletion:
		return setupCompletion(app)
	case opts.list:
		printList(app)
		return nil
	case opts.setLLMCli != "" || opts.setOutputFormat != "":
		return proompts.UpdateSettings(app.Env, settings.Global, opts.setLLMCli, opts.setOutputFormat)
	case opts.pick:
		return pick(cmd, app)
	default:
		return cmd.Help()
	}
}

// pick runs the chosen module directly when it needs no arguments and shows
// its help otherwise.
func pick(cmd *cobra.Command, app *App) error {
	items := make([]tui.Item, 0, len(app.Registry.All()))
	for _, m := range app.Registry.All() {
		it := tui.Item{Name: m.Name, Description: m.Description, Documentation: m.Documentation, Template: m.Template}
		for _, a := range m.Arguments {
			s := a.Flag()
			if a.Required {
				s += " (required)"
			}
			it.Arguments = append(it.Arguments, s+"  "+a.Description)
		}
		items = append(items, it)
	}

	run := app.Pick
	if run == nil {
		run = tui.Run
	}
	name, err := run(items)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}

	m, ok := app.Registry.Get(name)
	if !ok {
		return fmt.Errorf("unknown proompt %q", name)
	}
	for _, a := range m.Arguments {
		if a.Required {
			sub, _, err := cmd.Root().Find([]string{name})
			if err != nil {
				return err
			}
			return sub.Help()
		}
	}
	return m.Run(cmd.Context(), app.Env, proompts.Invocation{Values: map[string]string{}})
}

func shellName() string {
	return filepath.Base(os.Getenv("SHELL"))
}
