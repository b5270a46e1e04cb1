// Package logging builds the zap loggers used across genietalk. The
// interactive chat owns the terminal, so its logs go to a file under
// the config directory; one-shot commands log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select where and how verbosely to log.
type Options struct {
	Verbose bool   // log at debug level instead of info
	File    string // log file path; empty logs to stderr
}

// New builds a production JSON logger. With a file path set, the
// directory is created and both regular and internal error output go
// to that file so the terminal stays clean.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		config.OutputPaths = []string{opts.File}
		config.ErrorOutputPaths = []string{opts.File}
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
