package proompts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsmiamoto/proompt/internal/docmeta"
	"github.com/fsmiamoto/proompt/internal/gitinfo"
	"github.com/fsmiamoto/proompt/internal/prompt"
	"github.com/fsmiamoto/proompt/internal/repopack"
	"github.com/fsmiamoto/proompt/internal/settings"
	"github.com/fsmiamoto/proompt/internal/term"
	"github.com/fsmiamoto/proompt/internal/validation"
)

// snapshotPrefix names the temporary XML files written by the packer.
const snapshotPrefix = "proompt-repo"

// docJob describes one documentation run over a packed repository.
type docJob struct {
	root     string   // repository root, packed in full
	targets  []string // absolute directories that receive doc files
	previous string   // commit hash of the last documented state, if any
	// update records hash for a target whose doc files changed.
	update func(target, hash string, now time.Time) error
}

func handleDocumentProject(ctx context.Context, env *Env, m *Module, inv Invocation) error {
	vars, err := m.Bind(inv.Values)
	if err != nil {
		return err
	}
	res, err := env.resolve(m, inv.Override)
	if err != nil {
		return err
	}
	root, err := env.workDir()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	vars["rules"] = prompt.FormatRules(env.readRules(root), "project root")
	prev, _ := docmeta.Project(root)
	return env.document(ctx, m, inv, res, vars, docJob{
		root:     root,
		targets:  []string{root},
		previous: prev.CommitHash,
		update: func(_, hash string, now time.Time) error {
			return docmeta.UpdateProject(root, hash, now)
		},
	})
}

func handleDocumentDir(ctx context.Context, env *Env, m *Module, inv Invocation) error {
	vars, err := m.Bind(inv.Values)
	if err != nil {
		return err
	}
	res, err := env.resolve(m, inv.Override)
	if err != nil {
		return err
	}
	root, err := env.workDir()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	dirArg := vars["directoryPath"]
	dir, err := existingDir(root, dirArg)
	if err != nil {
		verr := validation.New("--directory-path", "%v", err)
		verr.Command = m.Name
		return verr
	}

	names := res.OutputFileNames()
	if vars["skipExisting"] == "true" && docmeta.AllExist(dir, names) {
		if env.Printer != nil {
			env.Printer.Success("Skipping %s: %s", dirArg, prompt.OutputVars(names)["allRequiredFilesExist"])
		}
		return nil
	}

	vars["rules"] = prompt.FormatRules(env.readRules(dir), "directory "+dirArg)
	prev, _ := docmeta.Directory(root, dir)
	return env.document(ctx, m, inv, res, vars, docJob{
		root:     root,
		targets:  []string{dir},
		previous: prev.CommitHash,
		update: func(target, hash string, now time.Time) error {
			return docmeta.UpdateDirectory(root, target, hash, now)
		},
	})
}

func handleDocumentDirs(ctx context.Context, env *Env, m *Module, inv Invocation) error {
	vars, err := m.Bind(inv.Values)
	if err != nil {
		return err
	}
	res, err := env.resolve(m, inv.Override)
	if err != nil {
		return err
	}
	root, err := env.workDir()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	var paths, dirs []string
	verr := &validation.Error{Command: m.Name}
	for _, p := range strings.Split(vars["directoryPaths"], ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		dir, err := existingDir(root, p)
		if err != nil {
			verr.Add("--directory-paths", "%v", err)
			continue
		}
		paths = append(paths, p)
		dirs = append(dirs, dir)
	}
	if len(paths) == 0 && verr.Empty() {
		verr.Add("--directory-paths", "At least one directory path is required")
	}
	if !verr.Empty() {
		return verr
	}

	rules := make(map[string]string, len(dirs))
	previous := ""
	for i, dir := range dirs {
		rules[paths[i]] = env.readRules(dir)
		if e, ok := docmeta.Directory(root, dir); ok && previous == "" {
			previous = e.CommitHash
		}
	}
	vars["directoryPaths"] = strings.Join(paths, ", ")
	vars["rules"] = prompt.FormatDirectoryRules(rules)

	return env.document(ctx, m, inv, res, vars, docJob{
		root:     root,
		targets:  dirs,
		previous: previous,
		update: func(target, hash string, now time.Time) error {
			return docmeta.UpdateDirectory(root, target, hash, now)
		},
	})
}

// document packs the repository, renders the template with the snapshot and
// change hint, launches the assistant and records the documented commit for
// every target whose doc files changed.
func (e *Env) document(ctx context.Context, m *Module, inv Invocation, res settings.Resolved, vars prompt.Vars, job docJob) error {
	log := e.logger()
	hash, ok := e.commitHash(ctx, job.root)
	if !ok {
		log.Debug("no git commit found; doc metadata will not be updated", "dir", job.root)
	}
	vars["changesSinceLastRun"] = gitinfo.DiffHint(job.previous, hash)

	snapshot, err := e.pack(ctx, job.root)
	if err != nil {
		return err
	}
	vars["repositorySnapshot"] = snapshotNote(snapshot)
	vars = vars.Merge(prompt.OutputVars(res.OutputFileNames()))

	start := e.now()
	if err := e.launch(ctx, m, res, prompt.Render(m.Template, vars), inv.DryRun, snapshot.Output); err != nil {
		return err
	}
	if inv.DryRun || !ok {
		return nil
	}

	names := res.OutputFileNames()
	now := e.now()
	for _, target := range job.targets {
		if !docmeta.AnyModified(start, []string{target}, names) {
			continue
		}
		if err := job.update(target, hash, now); err != nil {
			log.Warn("could not update doc metadata", "dir", target, "err", err)
			continue
		}
		log.Info("doc metadata updated", "dir", target, "commit", gitinfo.Short(hash))
	}
	return nil
}

func (e *Env) commitHash(ctx context.Context, dir string) (string, bool) {
	if e.CommitHash != nil {
		return e.CommitHash(ctx, dir)
	}
	return gitinfo.CommitHash(ctx, dir)
}

// pack writes a snapshot of root to a fresh temp file. The file is left in
// place after the run; its path is logged so it can be removed by hand.
func (e *Env) pack(ctx context.Context, root string) (repopack.Result, error) {
	if e.Packer == nil {
		return repopack.Result{}, &repopack.ExternalToolError{Err: errors.New("no packer configured")}
	}
	cfg, err := repopack.LoadConfig(root)
	if err != nil {
		return repopack.Result{}, err
	}
	out, err := repopack.TempPath(snapshotPrefix)
	if err != nil {
		return repopack.Result{}, &repopack.ExternalToolError{Err: err}
	}

	var sp *term.Spinner
	if e.Printer != nil {
		sp = term.StartSpinner(e.Printer.Err, "Packing repository...")
	}
	result, err := e.Packer.Pack(ctx, cfg.Options(root, out))
	sp.Stop()
	if err != nil {
		return repopack.Result{}, err
	}

	e.logger().Info("repository snapshot written", "path", result.Output, "files", result.TotalFiles, "bytes", result.TotalBytes, "skipped", result.Skipped)
	if e.Printer != nil {
		e.Printer.Dim("Packed %d files into %s", result.TotalFiles, result.Output)
		e.Printer.Dim("Clean up manually when finished: rm %q", result.Output)
	}
	return result, nil
}

func snapshotNote(r repopack.Result) string {
	return fmt.Sprintf("The repository has been packed into `%s` (%d files, XML with a `<directory_structure>` section and one `<file path=\"...\">` element per file). Read it before you start.", r.Output, r.TotalFiles)
}

// readRules returns dir/RULES.md, logging rather than failing on errors.
func (e *Env) readRules(dir string) string {
	rules, err := prompt.ReadRules(dir)
	if err != nil {
		e.logger().Warn("could not read rules", "dir", dir, "err", err)
		return ""
	}
	return rules
}

// existingDir resolves p against root and checks that it is a directory.
func existingDir(root, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	info, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("directory %q does not exist", p)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", p)
	}
	return filepath.Clean(p), nil
}
