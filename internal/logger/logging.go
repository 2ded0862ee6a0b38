// Package logger provides modifications to charmbracelet/log's default logger
// to be used across scls-go packages.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// redirectWriter is a level of indirection every New()-constructed logger
// writes through, so a later SetOutput call (e.g. cmd/scls opening a
// LOG_FILE after package-level `var log = logger.New(...)` initializers
// have already run at program-init time) still redirects them, instead of
// only affecting loggers constructed afterward.
type redirectWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

func (r *redirectWriter) Write(p []byte) (int, error) {
	r.mu.RLock()
	w := r.w
	r.mu.RUnlock()
	return w.Write(p)
}

func (r *redirectWriter) set(w io.Writer) {
	r.mu.Lock()
	r.w = w
	r.mu.Unlock()
}

// output is where every New()-constructed logger writes. Defaults to stderr
// since stdout is reserved for LSP frames when running under cmd/scls.
var output = &redirectWriter{w: os.Stderr}

// New creates a new default charm log writing to the current output target.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(output, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log with custom config.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(output, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// SetOutput redirects every New()-constructed logger, including ones already
// built, to w.
func SetOutput(w io.Writer) {
	output.set(w)
	log.SetOutput(w)
}

// ParseLevelOrWarn parses a level name, logging and falling back to Warn on
// an unrecognized value instead of failing startup over it.
func ParseLevelOrWarn(name string) log.Level {
	if name == "" {
		return log.WarnLevel
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		log.Warnf("unrecognized log level %q, defaulting to warn", name)
		return log.WarnLevel
	}
	return lvl
}
