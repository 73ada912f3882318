package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fsmiamoto/proompt/internal/proompts"
	"github.com/fsmiamoto/proompt/internal/settings"
	"github.com/fsmiamoto/proompt/internal/validation"
)

// Flags shared by every proompt except config.
const (
	llmCliFlag       = "llm-cli"
	outputFormatFlag = "output-format"
	dryRunFlag       = "dry-run"
)

func newModuleCommand(app *App, m *proompts.Module) *cobra.Command {
	positional := m.Positional()

	cmd := &cobra.Command{
		Use:   moduleUse(m),
		Short: m.Description,
		Args:  cobra.MaximumNArgs(len(positional)),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) >= len(positional) {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			if strings.Contains(positional[len(args)].Name, "directory") {
				return nil, cobra.ShellCompDirectiveFilterDirs
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := invocation(cmd, m, args)
			if err != nil {
				return err
			}
			if app.Logger != nil {
				app.Logger.Debug("running proompt", "command", m.Name, "dry_run", inv.DryRun)
			}
			if err := m.Run(cmd.Context(), app.Env, inv); err != nil {
				var verr *validation.Error
				if errors.As(err, &verr) {
					return err
				}
				return fmt.Errorf("running command %s: %w", m.Name, err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	for _, a := range m.Arguments {
		desc := a.Description
		if a.Required {
			desc += " (required)"
		}
		switch a.Type {
		case proompts.TypeBoolean:
			f.BoolP(a.Name, a.Alias, false, desc)
		default:
			f.StringP(a.Name, a.Alias, "", desc)
		}
	}

	if m.Name != "config" {
		f.StringP(llmCliFlag, "L", "", "LLM CLI to use for this run (claude|gemini)")
		f.Bool(dryRunFlag, false, "print the rendered prompt instead of launching the assistant")
		if m.Documentation {
			f.StringP(outputFormatFlag, "F", "", "documentation formats for this run (claude,gemini or any combination)")
		}
	}
	return cmd
}

func moduleUse(m *proompts.Module) string {
	parts := []string{m.Name}
	for _, a := range m.Positional() {
		parts = append(parts, "["+a.Name+"]")
	}
	parts = append(parts, "[flags]")
	return strings.Join(parts, " ")
}

// invocation collects flag and positional values. A value given both ways
// is an error.
func invocation(cmd *cobra.Command, m *proompts.Module, args []string) (proompts.Invocation, error) {
	f := cmd.Flags()
	inv := proompts.Invocation{Values: map[string]string{}}

	for _, a := range m.Arguments {
		if f.Changed(a.Name) {
			inv.Values[a.Name] = f.Lookup(a.Name).Value.String()
		}
	}

	verr := &validation.Error{Command: m.Name}
	for i, arg := range args {
		a := m.Positional()[i]
		if _, dup := inv.Values[a.Name]; dup {
			verr.Add(a.Flag(), "given both as a flag and as the positional argument %q", arg)
			continue
		}
		inv.Values[a.Name] = arg
	}
	if !verr.Empty() {
		return proompts.Invocation{}, verr
	}

	if m.Name == "config" {
		return inv, nil
	}
	inv.Override = settings.Override{}
	inv.Override.LLMCli, _ = f.GetString(llmCliFlag)
	if m.Documentation {
		inv.Override.OutputFormat, _ = f.GetString(outputFormatFlag)
	}
	inv.DryRun, _ = f.GetBool(dryRunFlag)
	return inv, nil
}
