// Package runner owns the loaded guards of a running guard process: it turns
// batches of changed paths into derived paths per guard and acts on them.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/guard/pkg/engine"
	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/guard"
	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/arthur-debert/guard/pkg/metrics"
	"github.com/arthur-debert/guard/pkg/ui"
	"github.com/rs/zerolog"
)

// GuardfileSource reloads the active Guardfile
type GuardfileSource interface {
	GuardfilePath() (string, error)
	Reload() ([]*guard.Guard, error)
}

// Executor runs a guard's command
type Executor func(ctx context.Context, argv []string) error

// Runner processes change batches against the loaded guards
type Runner struct {
	source   GuardfileSource
	engine   *engine.Engine
	reporter ui.Reporter
	printer  *ui.Printer
	metrics  *metrics.Metrics
	execute  Executor
	root     string
	groups   []string
	names    []string
	logger   zerolog.Logger

	mu     sync.RWMutex
	guards []*guard.Guard
}

// Option configures a Runner
type Option func(*Runner)

// WithReporter sets the sink for action failures and reload errors
func WithReporter(r ui.Reporter) Option {
	return func(rn *Runner) {
		rn.reporter = r
	}
}

// WithPrinter sets where derived paths of guards without a run command go
func WithPrinter(p *ui.Printer) Option {
	return func(rn *Runner) {
		rn.printer = p
	}
}

// WithMetrics records batch processing in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(rn *Runner) {
		rn.metrics = m
	}
}

// WithExecutor replaces the way run commands are started
func WithExecutor(e Executor) Option {
	return func(rn *Runner) {
		rn.execute = e
	}
}

// WithRoot sets the directory batch paths are relative to
func WithRoot(dir string) Option {
	return func(rn *Runner) {
		rn.root = dir
	}
}

// WithFilter restricts processing to the given groups and guard names
func WithFilter(groups, names []string) Option {
	return func(rn *Runner) {
		rn.groups = groups
		rn.names = names
	}
}

// New creates a runner for guards loaded from source
func New(source GuardfileSource, guards []*guard.Guard, opts ...Option) *Runner {
	r := &Runner{
		source:  source,
		guards:  guards,
		execute: ExecCommand(os.Stdout, os.Stderr),
		logger:  logging.GetLogger("runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.reporter == nil {
		r.reporter = ui.Default()
	}
	if r.printer == nil {
		r.printer = ui.NewPrinter(os.Stdout, ui.FormatAuto)
	}
	if r.root == "" {
		if cwd, err := os.Getwd(); err == nil {
			r.root = cwd
		}
	}
	engineOpts := []engine.Option{engine.WithReporter(r.reporter)}
	if r.metrics != nil {
		engineOpts = append(engineOpts, engine.WithFailureHook(func(error) {
			r.metrics.RecordActionFailure()
		}))
	}
	r.engine = engine.New(engineOpts...)
	return r
}

// Guards returns the guards selected by the runner's filter
func (r *Runner) Guards() []*guard.Guard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return guard.Filter(r.guards, r.groups, r.names)
}

// evaluation is what one guard derived from a batch
type evaluation struct {
	guard *guard.Guard
	paths []string
}

// Evaluate returns, per selected guard, the de-duplicated paths its
// watchers derive from paths. Guards deriving nothing are left out.
func (r *Runner) Evaluate(paths []string) []ui.MatchReport {
	reports := []ui.MatchReport{}
	for _, ev := range r.evaluate(paths) {
		reports = append(reports, report(ev))
	}
	return reports
}

func (r *Runner) evaluate(paths []string) []evaluation {
	var out []evaluation
	for _, g := range r.Guards() {
		derived := unique(r.engine.MatchFiles(g, paths))
		if r.metrics != nil {
			r.metrics.RecordDerived(g.Name, len(derived))
		}
		if len(derived) == 0 {
			continue
		}
		out = append(out, evaluation{guard: g, paths: derived})
	}
	return out
}

func report(ev evaluation) ui.MatchReport {
	return ui.MatchReport{Guard: ev.guard.Name, Group: ev.guard.Group, Paths: ev.paths}
}

// Any reports whether any selected guard derives a path from paths
func (r *Runner) Any(paths []string) bool {
	return r.engine.MatchFilesAny(engine.Groups(r.Guards()), paths)
}

// Process handles one batch of changed paths. A changed Guardfile is
// reloaded first; if that fails the previous guards stay active. Then every
// guard with derived paths runs its command, or has its paths printed when
// it has none. Command failures are reported and do not stop the batch.
func (r *Runner) Process(ctx context.Context, paths []string) error {
	start := time.Now()
	defer func() {
		if r.metrics != nil {
			r.metrics.RecordBatch(len(paths), time.Since(start))
		}
	}()

	r.reloadIfChanged(paths)

	evaluations := r.evaluate(paths)
	r.logger.Info().
		Int("changed", len(paths)).
		Int("guards", len(evaluations)).
		Msg("Batch evaluated")

	var printable []ui.MatchReport
	for _, ev := range evaluations {
		if len(ev.guard.Run) == 0 {
			printable = append(printable, report(ev))
			continue
		}
		r.run(ctx, ev.guard, ev.paths)
	}

	if len(printable) > 0 {
		if err := r.printer.Matches(printable); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "cannot print derived paths")
		}
	}
	return nil
}

func (r *Runner) reloadIfChanged(paths []string) {
	if r.source == nil {
		return
	}
	ruleFile, err := r.source.GuardfilePath()
	if err != nil || !engine.MatchesRuleFileFrom(r.root, ruleFile, paths) {
		return
	}

	guards, err := r.source.Reload()
	if r.metrics != nil {
		r.metrics.RecordReload(err == nil)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("path", ruleFile).Msg("Guardfile reload failed")
		r.reporter.Error(fmt.Sprintf("Guardfile reload failed, keeping the previous guards\n%s",
			strings.Join(errors.Causes(err), "\n")))
		return
	}

	r.mu.Lock()
	r.guards = guards
	r.mu.Unlock()
	r.reporter.Info(fmt.Sprintf("Reloaded %s (%d guards)", ruleFile, len(guards)))
}

func (r *Runner) run(ctx context.Context, g *guard.Guard, paths []string) {
	argv := append(append([]string(nil), g.Run...), paths...)
	logging.LogCommand(argv[0], argv[1:])

	err := r.execute(ctx, argv)
	if r.metrics != nil {
		r.metrics.RecordRun(g.Name, err == nil)
	}
	if err != nil {
		err = errors.Wrapf(err, errors.ErrRunCommand, "guard %s: %s failed", g.Name, strings.Join(g.Run, " ")).
			WithDetail("guard", g.Name)
		r.logger.Error().Err(err).Str("guard", g.Name).Msg("Run command failed")
		r.reporter.Error(strings.Join(errors.Causes(err), "\n"))
	}
}

// ExecCommand returns an Executor starting commands with their output
// attached to stdout and stderr
func ExecCommand(stdout, stderr io.Writer) Executor {
	return func(ctx context.Context, argv []string) error {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		return cmd.Run()
	}
}

// unique drops repeated paths, keeping first occurrences
func unique(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Summaries describes guards for listing
func Summaries(guards []*guard.Guard) []ui.GuardSummary {
	out := make([]ui.GuardSummary, 0, len(guards))
	for _, g := range guards {
		s := ui.GuardSummary{Name: g.Name, Group: g.Group, Run: g.Run, Watchers: []ui.WatcherSummary{}}
		for _, w := range g.Watchers() {
			ws := ui.WatcherSummary{Pattern: w.Pattern().String(), Regexp: w.Pattern().IsRegexp()}
			if !w.Action().IsZero() {
				ws.Action = w.Action().String()
			}
			s.Watchers = append(s.Watchers, ws)
		}
		out = append(out, s)
	}
	return out
}
