// Package logger holds the process-wide zerolog logger for the user service.
//
// main calls Init once with values from config; components then take a
// scoped child with For("reference_scanner") and so on, so every entry can be
// filtered by service, env and component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the root logger.
type Options struct {
	Level   string    // trace, debug, info, warn|warning, error; anything else means info
	Pretty  bool      // console writer for local runs, JSON otherwise
	Service string    // "service" field, omitted when empty
	Env     string    // "env" field, omitted when empty
	Output  io.Writer // os.Stdout when nil
}

var (
	mu   sync.RWMutex
	root *zerolog.Logger
)

// Init builds the root logger on first use and returns it. Later calls return
// the existing logger unchanged, whatever their options.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return *root
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	fields := zerolog.New(out).Level(lvl).With().Timestamp().Caller()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	if opts.Env != "" {
		fields = fields.Str("env", opts.Env)
	}
	l := fields.Logger()
	root = &l
	return l
}

// Get returns the root logger. It panics before Init.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if root == nil {
		panic("logger: Get() called before Init()")
	}
	return *root
}

// For returns a child of the root logger tagged with component.
func For(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

// Reset drops the root logger and restores the global level. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = nil
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	switch lvl, err := zerolog.ParseLevel(s); {
	case err != nil, s == "", lvl > zerolog.ErrorLevel:
		return zerolog.InfoLevel
	default:
		return lvl
	}
}
