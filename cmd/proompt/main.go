// Command proompt runs pre-written prompts through an AI coding assistant.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsmiamoto/proompt/internal/cli"
	"github.com/fsmiamoto/proompt/internal/logging"
	"github.com/fsmiamoto/proompt/internal/proompts"
	"github.com/fsmiamoto/proompt/internal/repopack"
	"github.com/fsmiamoto/proompt/internal/runner"
	"github.com/fsmiamoto/proompt/internal/settings"
	"github.com/fsmiamoto/proompt/internal/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var logPath, runsRoot string
	if home, err := settings.HomeDir(); err == nil {
		logPath = filepath.Join(home, ".proompt", logging.FileName)
		runsRoot = filepath.Join(home, ".proompt", "runs")
	} else {
		fmt.Fprintf(stderr, "proompt: %v; run history and log file disabled\n", err)
	}

	logger := logging.New(logging.Options{
		Stderr:   stderr,
		FilePath: logPath,
		Verbose:  os.Getenv("PROOMPT_DEBUG") != "",
	})
	defer logger.Close()

	registry, err := proompts.Load()
	if err != nil {
		fmt.Fprintf(stderr, "proompt: %v\n", err)
		return 1
	}

	store := settings.NewStore(logger.Logger)
	executor := runner.New(logger.Logger)
	executor.Stdin, executor.Stdout, executor.Stderr = stdin, stdout, stderr

	app := &cli.App{
		Registry: registry,
		Env: &proompts.Env{
			Store:    store,
			Resolver: settings.NewResolver(store),
			Executor: executor,
			Packer:   repopack.FSPacker{},
			Printer:  term.NewPrinter(stdout, stderr),
			Logger:   logger.Logger,
			RunsRoot: runsRoot,
		},
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger.Logger,
	}

	if err := cli.Execute(context.Background(), app, args); err != nil {
		logger.Debug("command failed", "err", err)
		cli.PrintError(stderr, err)
		return 1
	}
	return 0
}
