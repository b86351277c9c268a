package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	fileMu sync.Mutex
	file   *os.File
)

// SetupLogger configures the global logger for the given -v count. Records go
// to stderr and to the log file under the XDG state directory. Calling it
// again replaces the previous setup and closes its log file.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !colorStderr(),
	}}

	logPath := getLogFilePath()
	handle, err := setupLogFile(logPath)
	if err == nil {
		writers = append(writers, handle)
	}
	previous := swapLogFile(handle)

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if previous != nil {
		_ = previous.Close()
	}

	if err != nil {
		log.Warn().Err(err).Str("path", logPath).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logPath).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// colorStderr follows the same rule as terminal output: NO_COLOR wins, then
// stderr must be a terminal
func colorStderr() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func swapLogFile(next *os.File) *os.File {
	fileMu.Lock()
	defer fileMu.Unlock()
	previous := file
	file = next
	return previous
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// getLogFilePath returns ~/.local/state/guard/guard.log, or its XDG_STATE_HOME
// equivalent
func getLogFilePath() string {
	xdg.Reload()
	if xdg.StateHome == "" {
		return "guard.log"
	}
	return filepath.Join(xdg.StateHome, "guard", "guard.log")
}

func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot create log directory %s", filepath.Dir(logPath))
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot open log file %s", logPath)
	}
	return f, nil
}

// LogCommand records an external command about to run: a guard's run
// command, a command action, or the CLI invocation itself
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
