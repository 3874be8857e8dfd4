// Package logging builds the hclog logger used by the driver and the CLI.
// Analysis results never go through the logger; it carries lifecycle
// messages (files discovered, cache hits, worker failures) only.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "LINTEL_LOG_LEVEL"

// Options configure New.
type Options struct {
	Name string
	// Level is one of trace, debug, info, warn, error, off. Empty means warn.
	Level      string
	JSONFormat bool
	// Output defaults to stderr: stdout is reserved for results.
	Output io.Writer
}

// New returns a logger; the level comes from LINTEL_LOG_LEVEL first, then opts.Level.
func New(opts Options) (hclog.Logger, error) {
	raw := opts.Level
	if env := os.Getenv(EnvLevel); env != "" {
		raw = env
	}
	level, err := ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	name := opts.Name
	if name == "" {
		name = "lintel"
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		Level:       level,
		Output:      out,
		JSONFormat:  opts.JSONFormat,
		DisableTime: !opts.JSONFormat,
	}), nil
}

// ParseLevel converts a level name to hclog.Level.
func ParseLevel(s string) (hclog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return hclog.Warn, nil
	case "TRACE":
		return hclog.Trace, nil
	case "DEBUG":
		return hclog.Debug, nil
	case "INFO":
		return hclog.Info, nil
	case "WARN", "WARNING":
		return hclog.Warn, nil
	case "ERROR":
		return hclog.Error, nil
	case "OFF":
		return hclog.Off, nil
	}
	return hclog.NoLevel, fmt.Errorf("unknown log level %q (want trace|debug|info|warn|error|off)", s)
}

// Nop returns a logger that discards everything.
func Nop() hclog.Logger { return hclog.NewNullLogger() }
