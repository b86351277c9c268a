package watcher

import (
	"fmt"
	"regexp"
	"runtime/debug"

	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/arthur-debert/guard/pkg/ui"
)

// Watcher is a single watch rule. It is read-only once built.
type Watcher struct {
	pattern Pattern
	action  Action
}

type options struct {
	action   Action
	reporter ui.Reporter
}

// Option configures New
type Option func(*options)

// WithAction sets the watcher's action
func WithAction(a Action) Option {
	return func(o *options) {
		o.action = a
	}
}

// WithReporter sets where the deprecation notice for legacy string patterns
// is reported. Defaults to ui.Default().
func WithReporter(r ui.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// New builds a watcher from a string or *regexp.Regexp pattern.
//
// A nil pattern, a nil *regexp.Regexp and the empty string all fail with
// ErrArgumentMissing: "" is rejected, not taken as a literal that matches
// only the empty path. A *regexp.Regexp is kept as given. A string is a
// literal unless LooksLikeRegexp says otherwise, in which case it is
// compiled and a deprecation notice is reported.
func New(pattern interface{}, opts ...Option) (*Watcher, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	p, err := buildPattern(pattern, &o)
	if err != nil {
		return nil, err
	}

	return &Watcher{pattern: p, action: o.action}, nil
}

func buildPattern(pattern interface{}, o *options) (Pattern, error) {
	switch p := pattern.(type) {
	case nil:
		return Pattern{}, errors.New(errors.ErrArgumentMissing, "watch pattern is required")
	case *regexp.Regexp:
		if p == nil {
			return Pattern{}, errors.New(errors.ErrArgumentMissing, "watch pattern is required")
		}
		return RegexpPattern(p), nil
	case string:
		if p == "" {
			return Pattern{}, errors.New(errors.ErrArgumentMissing, "watch pattern is required")
		}
		if !LooksLikeRegexp(p) {
			return LiteralPattern(p), nil
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return Pattern{}, errors.Wrapf(err, errors.ErrInvalidPattern,
				"watch pattern %q looks like a regular expression but does not compile", p).
				WithDetail("pattern", p)
		}
		reporter := o.reporter
		if reporter == nil {
			reporter = ui.Default()
		}
		reporter.Info(deprecationNotice(p))
		logger := logging.GetLogger("watcher")
		logger.Debug().
			Str("pattern", p).
			Msg("Converted legacy string pattern to regexp")
		return RegexpPattern(re), nil
	default:
		return Pattern{}, errors.Newf(errors.ErrInvalidPattern,
			"unsupported watch pattern type %T", pattern)
	}
}

func deprecationNotice(pattern string) string {
	return fmt.Sprintf("DEPRECATION: the watch pattern %q is a string that looks like a regular expression. "+
		"It is treated as one, please declare it as a regexp instead.", pattern)
}

// Pattern returns the watcher's pattern
func (w *Watcher) Pattern() Pattern {
	return w.pattern
}

// Action returns the watcher's action
func (w *Watcher) Action() Action {
	return w.action
}

// MatchFile reports whether path matches the watcher's pattern
func (w *Watcher) MatchFile(path string) bool {
	_, ok := w.pattern.Match(path)
	return ok
}

// Match tests path and keeps the match for WithMatch actions
func (w *Watcher) Match(path string) (Match, bool) {
	return w.pattern.Match(path)
}

// Call runs the watcher's action for m and normalizes what it returns.
// Without an action the matched path is the result. An error returned by the
// action, or a panic inside it, comes back as an ErrActionInvocation error
// with an empty result.
func (w *Watcher) Call(m Match) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = Empty()
			err = errors.Newf(errors.ErrActionInvocation,
				"watch action for %s panicked on %s: %v", w.pattern, m.Path(), r).
				WithDetail("pattern", w.pattern.String()).
				WithDetail("action", w.action.String()).
				WithDetail("path", m.Path()).
				WithDetail("stack", string(debug.Stack()))
		}
	}()

	var value interface{}
	switch w.action.kind {
	case KindNoArg:
		value, err = w.action.noArg()
	case KindWithMatch:
		value, err = w.action.withMatch(m)
	default:
		return One(m.Path()), nil
	}

	if err != nil {
		return Empty(), errors.Wrapf(err, errors.ErrActionInvocation,
			"watch action for %s failed on %s", w.pattern, m.Path()).
			WithDetail("pattern", w.pattern.String()).
			WithDetail("action", w.action.String()).
			WithDetail("path", m.Path())
	}
	return Normalize(value), nil
}

// String describes the watcher
func (w *Watcher) String() string {
	if w.action.IsZero() {
		return w.pattern.String()
	}
	return fmt.Sprintf("%s -> %s", w.pattern, w.action)
}
