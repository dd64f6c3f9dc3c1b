package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	corelogger "github.com/kilianp07/crashlens/core/logger"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.Nop

// Options controls where and how much is logged.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives logs in addition to stderr and is rotated.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu      sync.RWMutex
	current = Options{}
	out     io.Writer
)

// Configure sets the process-wide output used by New. It is called once by
// the CLI after the configuration is loaded.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	current = opts
	out = nil
	if opts.File != "" {
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
	}
}

// New returns a Logger for the given component. The environment is detected via
// the APP_ENV variable.
func New(component string) Logger {
	mu.RLock()
	opts, file := current, out
	mu.RUnlock()
	var w io.Writer = os.Stderr
	if file != nil {
		w = io.MultiWriter(os.Stderr, file)
	}
	return NewZerologLogger(component, w, opts.Level, strings.ToLower(os.Getenv("APP_ENV")) == "dev")
}
