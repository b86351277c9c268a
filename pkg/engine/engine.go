package engine

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/arthur-debert/guard/pkg/ui"
	"github.com/arthur-debert/guard/pkg/watcher"
	"github.com/rs/zerolog"
)

// ActionFailurePrefix starts every error report for a failed watch action
const ActionFailurePrefix = "Problem with watch action!"

// RuleGroup is an ordered collection of watchers
type RuleGroup interface {
	Watchers() []*watcher.Watcher
}

// Groups converts a slice of concrete rule groups for MatchFilesAny
func Groups[G RuleGroup](groups []G) []RuleGroup {
	out := make([]RuleGroup, len(groups))
	for i, g := range groups {
		out[i] = g
	}
	return out
}

// Engine matches changed paths against rule groups
type Engine struct {
	reporter  ui.Reporter
	onFailure func(error)
	logger    zerolog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithReporter sets the sink for action failure reports. Defaults to
// ui.Default() at report time.
func WithReporter(r ui.Reporter) Option {
	return func(e *Engine) {
		e.reporter = r
	}
}

// WithFailureHook calls fn with every watch action failure, after it has
// been reported
func WithFailureHook(fn func(error)) Option {
	return func(e *Engine) {
		e.onFailure = fn
	}
}

// New creates an engine
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: logging.GetLogger("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MatchFiles returns the paths derived by group's watchers for paths, in
// watcher-then-path order. Duplicates are kept.
func (e *Engine) MatchFiles(group RuleGroup, paths []string) []string {
	done := logging.LogOperationStart(e.logger, "match_files")
	defer done()

	derived := []string{}
	for _, w := range group.Watchers() {
		for _, path := range paths {
			derived = append(derived, e.resolve(w, path)...)
		}
	}

	e.logger.Debug().
		Int("paths", len(paths)).
		Int("derived", len(derived)).
		Msg("Matched files")
	return derived
}

// MatchFilesAny reports whether any group derives at least one path from
// paths. It stops at the first watcher and path that derive something.
func (e *Engine) MatchFilesAny(groups []RuleGroup, paths []string) bool {
	for _, group := range groups {
		for _, w := range group.Watchers() {
			for _, path := range paths {
				if len(e.resolve(w, path)) > 0 {
					return true
				}
			}
		}
	}
	return false
}

// resolve returns what w derives from path. Action failures are reported
// and yield nothing.
func (e *Engine) resolve(w *watcher.Watcher, path string) []string {
	m, ok := w.Match(path)
	if !ok {
		return nil
	}

	result, err := w.Call(m)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("pattern", w.Pattern().String()).
			Str("path", path).
			Msg("Watch action failed")
		e.sink().Error(failureReport(err))
		if e.onFailure != nil {
			e.onFailure(err)
		}
		return nil
	}

	e.logger.Trace().
		Str("pattern", w.Pattern().String()).
		Str("path", path).
		Strs("derived", result.Paths()).
		Msg("Watcher matched")
	return result.Paths()
}

func (e *Engine) sink() ui.Reporter {
	if e.reporter != nil {
		return e.reporter
	}
	return ui.Default()
}

// siteDetails name where a failed action was declared and what it ran on
var siteDetails = []string{"pattern", "action", "path"}

// failureReport renders an action failure: the fixed prefix, the cause
// chain, the failing site, then the stack when the action panicked.
func failureReport(err error) string {
	var b strings.Builder
	b.WriteString(ActionFailurePrefix)
	for _, cause := range errors.Causes(err) {
		b.WriteString("\n")
		b.WriteString(cause)
	}
	details := errors.GetErrorDetails(err)
	for _, key := range siteDetails {
		if v, ok := details[key].(string); ok && v != "" {
			fmt.Fprintf(&b, "\n  %s: %s", key, v)
		}
	}
	if stack, ok := details["stack"].(string); ok && stack != "" {
		b.WriteString("\n\n")
		b.WriteString(stack)
	}
	return b.String()
}
