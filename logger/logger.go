package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phuslu/log"

	"HeapDB/config"
)

/*
Structured logging for the heap store.
Every component receives a *log.Logger and derives its own sub-logger with Component,
so each line carries component=<name>. Page level traces are logged at debug level,
operations that change the file at info level.
*/

// New builds a logger from the log section of the config.
// The returned closer releases the output file, if any.
func New(cfg *config.Config) (*log.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.Log.Output != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Output), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.Log.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.Log.Output, err)
		}
		out = file
		closer = file
	}

	logger := &log.Logger{
		Level:      log.ParseLevel(cfg.Log.Level),
		TimeFormat: "15:04:05.000",
	}

	if cfg.Log.Format == "json" {
		logger.Writer = log.IOWriter{Writer: out}
	} else {
		logger.Writer = &log.ConsoleWriter{
			Writer:         out,
			ColorOutput:    cfg.Log.Output == "" && log.IsTerminal(os.Stderr.Fd()),
			QuoteString:    true,
			EndWithMessage: true,
		}
	}

	return logger, closer, nil
}

// Component returns a copy of parent whose lines carry component=name.
// A nil parent yields a discarding logger.
func Component(parent *log.Logger, name string) *log.Logger {
	if parent == nil {
		return Discard()
	}
	child := *parent
	child.Context = log.NewContext(append([]byte(nil), parent.Context...)).Str("component", name).Value()
	return &child
}

// Discard returns a logger that drops everything, used by tests and library callers
// that do not care about logs.
func Discard() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: log.IOWriter{Writer: io.Discard},
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
