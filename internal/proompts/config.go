package proompts

import (
	"context"
	"strings"

	"github.com/fsmiamoto/proompt/internal/assistant"
	"github.com/fsmiamoto/proompt/internal/settings"
	"github.com/fsmiamoto/proompt/internal/validation"
)

// Flags of the config command, as shown in validation errors.
const (
	setLLMCliFlag       = "-L, --set-llm-cli"
	setOutputFormatFlag = "-F, --set-output-format"
)

func handleConfig(_ context.Context, env *Env, m *Module, inv Invocation) error {
	vars, err := m.Bind(inv.Values)
	if err != nil {
		return err
	}
	global := vars["global"] == "true"
	project := vars["project"] == "true"
	setLLM := vars["setLlmCli"]
	setFormat := vars["setOutputFormat"]

	if global && project {
		verr := validation.New("-g, --global", "cannot be combined with --project")
		verr.Command = m.Name
		return verr
	}

	if setLLM == "" && setFormat == "" {
		switch {
		case global:
			showGlobal(env)
		case project:
			showProject(env)
		default:
			showEffective(env)
		}
		return nil
	}

	if !global && !project {
		verr := validation.New("-g, --global | -p, --project", "choose which settings file to change")
		verr.Command = m.Name
		return verr
	}
	scope := settings.Project
	if global {
		scope = settings.Global
	}
	return UpdateSettings(env, scope, setLLM, setFormat)
}

// UpdateSettings validates and writes llmCli and/or outputFormat to scope,
// keeping whatever the file already holds for the other field.
func UpdateSettings(env *Env, scope settings.Scope, llmCli, outputFormat string) error {
	verr := &validation.Error{Command: "config"}

	var llm assistant.Assistant
	if llmCli != "" {
		a, err := assistant.Parse(llmCli)
		if err != nil {
			verr.Add(setLLMCliFlag, "Invalid LLM CLI %q. Valid options are: %s", llmCli, assistant.Names())
		}
		llm = a
	}
	var formats []assistant.Assistant
	if outputFormat != "" {
		list, err := assistant.ParseList(outputFormat)
		if err != nil {
			verr.Add(setOutputFormatFlag, "Invalid output format %q. Valid options are: %s (comma-separated), e.g. claude,gemini", outputFormat, assistant.Names())
		}
		formats = list
	}
	if !verr.Empty() {
		return verr
	}

	current := settings.Settings{LLMCli: assistant.Default}
	if doc := env.Store.Read(scope); doc.Settings != nil {
		current = *doc.Settings
	}
	if llm != "" {
		current.LLMCli = llm
	}
	if formats != nil {
		current.OutputFormat = formats
	}
	if err := env.Store.Write(scope, current); err != nil {
		return err
	}

	p := env.Printer
	if llm != "" {
		p.Success("✓ LLM CLI set to: %s", llm)
	}
	if formats != nil {
		p.Success("✓ Output format set to: %s", assistant.Join(formats))
	}
	path, _ := env.Store.Path(scope)
	p.Success("✓ %s settings saved to: %s", scopeTitle(scope), path)
	return nil
}

func scopeTitle(s settings.Scope) string {
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func formatOf(st *settings.Settings) string {
	return assistant.Join(st.EffectiveOutputFormat())
}

func showGlobal(env *Env) {
	p := env.Printer
	doc := env.Store.Read(settings.Global)
	if doc.FileExists && doc.Settings != nil {
		p.Heading("Global configuration (from %s):", doc.FilePath)
		p.Println("  LLM CLI: %s", doc.Settings.LLMCli)
		p.Println("  Output format: %s", formatOf(doc.Settings))
		return
	}
	p.Println("No global configuration file found.")
	p.Println("Using built-in defaults:")
	p.Println("  LLM CLI: %s (default)", assistant.Default)
	p.Println("  Output format: %s (default)", assistant.Default)
	p.Println("")
	p.Dim("Create global settings: proompt config --global --set-llm-cli <value>")
}

func showProject(env *Env) {
	p := env.Printer
	doc := env.Store.Read(settings.Project)
	if doc.FileExists && doc.Settings != nil {
		p.Heading("Project configuration (from %s):", doc.FilePath)
		p.Println("  LLM CLI: %s", doc.Settings.LLMCli)
		p.Println("  Output format: %s", formatOf(doc.Settings))
		return
	}
	p.Println("No project configuration file found.")
	p.Println("Effective settings for this project:")
	global := env.Store.Read(settings.Global)
	if global.FileExists && global.Settings != nil {
		p.Println("  LLM CLI: %s (from global settings)", global.Settings.LLMCli)
		p.Println("  Output format: %s (from global settings)", formatOf(global.Settings))
	} else {
		p.Println("  LLM CLI: %s (built-in default)", assistant.Default)
		p.Println("  Output format: %s (built-in default)", assistant.Default)
	}
	p.Println("")
	p.Dim("Create project settings: proompt config --project --set-llm-cli <value>")
}

// showEffective prints the merged settings and which layer they came from.
func showEffective(env *Env) {
	p := env.Printer
	source := "built-in default"
	for _, scope := range []settings.Scope{settings.Global, settings.Project} {
		doc := env.Store.Read(scope)
		if doc.FileExists && doc.Settings != nil {
			source = string(scope) + " settings, " + doc.FilePath
		}
	}
	res, err := env.Resolver.Resolve(settings.Override{})
	if err != nil {
		p.Warn("could not resolve settings: %v", err)
		return
	}
	p.Heading("Effective configuration:")
	p.Println("  LLM CLI: %s (from %s)", res.LLMCli, source)
	p.Println("  Output format: %s (from %s)", assistant.Join(res.OutputFormat), source)
	p.Println("")
	p.Dim("Show one layer with --global or --project; change it with --set-llm-cli / --set-output-format.")
}
