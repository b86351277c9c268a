package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/rs/zerolog"
)

// Reporter is the diagnostic sink guard writes user-facing notices to.
// Info carries deprecation notices, Error carries failed watch actions.
type Reporter interface {
	Info(msg string)
	Error(msg string)
}

// ConsoleReporter writes notices to a terminal or stream and mirrors them to
// the log.
type ConsoleReporter struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
}

// NewConsoleReporter creates a reporter writing to out. FormatAuto is
// resolved against out.
func NewConsoleReporter(out io.Writer, format Format) *ConsoleReporter {
	return &ConsoleReporter{
		out:    out,
		styles: NewStyles(out, Resolve(format, out)),
	}
}

// Info writes an informational notice
func (r *ConsoleReporter) Info(msg string) {
	log := logger()
	log.Info().Msg(msg)
	r.write(r.styles.Info.Render("INFO:"), msg)
}

// Error writes an error notice
func (r *ConsoleReporter) Error(msg string) {
	log := logger()
	log.Error().Msg(msg)
	r.write(r.styles.Error.Render("ERROR:"), msg)
}

func (r *ConsoleReporter) write(prefix, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.out, "%s %s\n", prefix, msg)
}

func logger() zerolog.Logger {
	return logging.GetLogger("ui")
}

type discardReporter struct{}

func (discardReporter) Info(string)  {}
func (discardReporter) Error(string) {}

// Discard is a Reporter that drops every notice
var Discard Reporter = discardReporter{}

var (
	defaultMu       sync.RWMutex
	defaultReporter Reporter = NewConsoleReporter(os.Stderr, FormatAuto)
)

// Default returns the process-wide reporter
func Default() Reporter {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultReporter
}

// SetDefault replaces the process-wide reporter and returns a function
// restoring the previous one
func SetDefault(r Reporter) func() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	previous := defaultReporter
	defaultReporter = r
	return func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		defaultReporter = previous
	}
}
