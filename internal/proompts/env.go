package proompts

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/fsmiamoto/proompt/internal/assistant"
	"github.com/fsmiamoto/proompt/internal/prompt"
	"github.com/fsmiamoto/proompt/internal/repopack"
	"github.com/fsmiamoto/proompt/internal/runner"
	"github.com/fsmiamoto/proompt/internal/runstore"
	"github.com/fsmiamoto/proompt/internal/settings"
	"github.com/fsmiamoto/proompt/internal/term"
	"github.com/fsmiamoto/proompt/internal/validation"
)

// SettingsStore is the part of settings.Store that handlers use.
type SettingsStore interface {
	Read(scope settings.Scope) settings.Document
	Write(scope settings.Scope, st settings.Settings) error
	Path(scope settings.Scope) (string, error)
}

// Resolver produces effective settings for an invocation.
type Resolver interface {
	Resolve(o settings.Override) (settings.Resolved, error)
}

// Executor launches the assistant.
type Executor interface {
	Execute(ctx context.Context, prompt string, res settings.Resolved) error
}

// Env carries the collaborators a handler needs.
type Env struct {
	Store    SettingsStore
	Resolver Resolver
	Executor Executor
	Packer   repopack.Packer
	Printer  *term.Printer
	Logger   *slog.Logger

	RunsRoot   string // empty disables run recording
	WorkDir    string // empty means the process working directory
	Now        func() time.Time
	CommitHash func(ctx context.Context, dir string) (string, bool)
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) workDir() (string, error) {
	if e.WorkDir != "" {
		return e.WorkDir, nil
	}
	return os.Getwd()
}

func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// resolve asks the resolver for settings and tags validation errors with the
// module name so the user sees which command to ask --help for.
func (e *Env) resolve(m *Module, o settings.Override) (settings.Resolved, error) {
	res, err := e.Resolver.Resolve(o)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) && verr.Command == "" {
			verr.Command = m.Name
		}
		return settings.Resolved{}, err
	}
	return res, nil
}

// runDefault validates, resolves, renders and launches.
func runDefault(ctx context.Context, env *Env, m *Module, inv Invocation) error {
	vars, err := m.Bind(inv.Values)
	if err != nil {
		return err
	}
	res, err := env.resolve(m, inv.Override)
	if err != nil {
		return err
	}
	vars = vars.Merge(prompt.OutputVars(res.OutputFileNames()))
	return env.launch(ctx, m, res, prompt.Render(m.Template, vars), inv.DryRun, "")
}

// launch records the run, then either prints the prompt (dry run) or hands
// it to the executor.
func (e *Env) launch(ctx context.Context, m *Module, res settings.Resolved, text string, dryRun bool, snapshot string) error {
	rec := e.startRecord(m, res, text, snapshot)

	if dryRun {
		e.showPrompt(text)
		rec.finish(e, runstore.StatusDryRun, 0, nil)
		return nil
	}

	e.logger().Info("launching assistant", "command", m.Name, "assistant", res.LLMCli, "formats", assistant.Join(res.OutputFormat))
	err := e.Executor.Execute(ctx, text, res)
	if err != nil {
		rec.finish(e, runstore.StatusFailed, exitCode(err), err)
		return err
	}
	rec.finish(e, runstore.StatusCompleted, 0, nil)
	return nil
}

func (e *Env) showPrompt(text string) {
	if e.Printer == nil {
		return
	}
	if e.Printer.Color {
		text = term.RenderMarkdown(text, term.Width(e.Printer.Out, 100))
	}
	e.Printer.Println("%s", text)
}

func exitCode(err error) int {
	var childErr *runner.ChildProcessError
	if errors.As(err, &childErr) {
		return childErr.Code
	}
	return -1
}

// record is the bookkeeping for one run. A nil record is a no-op.
type record struct {
	run  *runstore.Run
	meta runstore.Meta
}

func (e *Env) startRecord(m *Module, res settings.Resolved, text, snapshot string) *record {
	if e.RunsRoot == "" {
		return nil
	}
	log := e.logger()
	run, err := runstore.Create(e.RunsRoot)
	if err != nil {
		log.Warn("could not record run", "err", err)
		return nil
	}
	wd, _ := e.workDir()
	formats := make([]string, len(res.OutputFormat))
	for i, a := range res.OutputFormat {
		formats[i] = a.String()
	}
	rec := &record{run: run, meta: runstore.Meta{
		Command:      m.Name,
		LLMCli:       res.LLMCli.String(),
		OutputFormat: formats,
		StartedAt:    e.now(),
		Status:       runstore.StatusRunning,
		SnapshotPath: snapshot,
		WorkDir:      wd,
	}}
	if err := run.WritePrompt(text); err != nil {
		log.Warn("could not record prompt", "run_id", run.ID, "err", err)
	}
	if err := run.WriteMeta(rec.meta); err != nil {
		log.Warn("could not record run metadata", "run_id", run.ID, "err", err)
	}
	log.Debug("run recorded", "run_id", run.ID, "dir", run.Dir)
	return rec
}

func (r *record) finish(e *Env, status string, code int, runErr error) {
	if r == nil {
		return
	}
	r.meta.Status = status
	r.meta.ExitCode = code
	r.meta.EndedAt = e.now()
	if runErr != nil {
		r.meta.Error = runErr.Error()
	}
	if err := r.run.WriteMeta(r.meta); err != nil {
		e.logger().Warn("could not record run metadata", "run_id", r.run.ID, "err", err)
	}
}
