// Package logging builds the process logger: warnings go to stderr, and every
// record down to DEBUG goes to a rotating file under the proompt home.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file kept in the proompt home directory.
const FileName = "proompt.log"

// Options configure New.
type Options struct {
	Stderr      io.Writer  // receives StderrLevel and above; nil disables
	StderrLevel slog.Level // defaults to WARN
	FilePath    string     // empty disables the file sink
	Verbose     bool       // lower the stderr threshold to DEBUG
}

// Logger wraps slog.Logger and owns the file sink.
type Logger struct {
	*slog.Logger
	file io.Closer
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New builds a Logger from opts.
func New(opts Options) *Logger {
	var handlers []slog.Handler
	var closer io.Closer

	if opts.Stderr != nil {
		level := opts.StderrLevel
		if level == 0 {
			level = slog.LevelWarn
		}
		if opts.Verbose {
			level = slog.LevelDebug
		}
		handlers = append(handlers, slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{Level: level}))
	}

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err == nil {
			lj := &lumberjack.Logger{
				Filename:   opts.FilePath,
				MaxSize:    5, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
			}
			closer = lj
			handlers = append(handlers, slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}

	return &Logger{Logger: slog.New(fanout(handlers)), file: closer}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(fanout(nil))
}

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
