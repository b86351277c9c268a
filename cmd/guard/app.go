package guard

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/arthur-debert/guard/pkg/config"
	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/guard"
	"github.com/arthur-debert/guard/pkg/guardfile"
	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/arthur-debert/guard/pkg/runner"
	"github.com/arthur-debert/guard/pkg/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrNoMatch makes "guard check" exit with status 1 without a message
var ErrNoMatch = stderrors.New("no guard matched")

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, ErrNoMatch):
		return 1
	default:
		return 2
	}
}

// globalFlags are the persistent flags of the root command
type globalFlags struct {
	verbosity  int
	configPath string
	guardfile  string
	format     string
}

// selection are the guard filter flags shared by match, check, show and watch
type selection struct {
	groups []string
	names  []string
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&s.groups, "group", "g", nil, MsgFlagGroup)
	cmd.Flags().StringSliceVar(&s.names, "guard", nil, MsgFlagGuard)
}

// app is what a command needs once settings and the Guardfile are loaded
type app struct {
	cfg      *config.Config
	format   ui.Format
	reporter ui.Reporter
	printer  *ui.Printer
	loader   *guardfile.Loader
	guards   []*guard.Guard
}

// loadSettings reads the settings, applying the flags the user set
func loadSettings(cmd *cobra.Command, flags *globalFlags, extra map[string]interface{}) (*config.Config, ui.Format, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("guardfile") {
		overrides["guardfile"] = flags.guardfile
	}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = flags.format
	}
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.Load(config.Options{
		UserConfig: flags.configPath,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, ui.FormatAuto, err
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, ui.FormatAuto, errors.Wrap(err, errors.ErrInvalidInput, "invalid output format")
	}
	return cfg, format, nil
}

// newApp loads settings and the Guardfile for cmd
func newApp(cmd *cobra.Command, flags *globalFlags, extra map[string]interface{}) (*app, error) {
	logger := logging.GetLogger("cmd")

	cfg, format, err := loadSettings(cmd, flags, extra)
	if err != nil {
		return nil, err
	}

	var reporter ui.Reporter = ui.NewConsoleReporter(cmd.ErrOrStderr(), format)
	if !cfg.Notify.Deprecations {
		reporter = &noDeprecations{Reporter: reporter}
	}
	ui.SetDefault(reporter)

	loader := guardfile.NewLoader(afero.NewOsFs(), guardfile.WithReporter(reporter))
	path := cfg.Guardfile
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
		}
		if path, err = loader.Find(cwd); err != nil {
			return nil, err
		}
	}

	guards, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("guardfile", path).
		Int("guards", len(guards)).
		Str("format", format.String()).
		Msg("Application ready")

	return &app{
		cfg:      cfg,
		format:   format,
		reporter: reporter,
		printer:  ui.NewPrinter(cmd.OutOrStdout(), format),
		loader:   loader,
		guards:   guards,
	}, nil
}

// runner builds a runner over the loaded guards
func (a *app) runner(sel *selection, opts ...runner.Option) *runner.Runner {
	base := []runner.Option{
		runner.WithReporter(a.reporter),
		runner.WithPrinter(a.printer),
		runner.WithFilter(sel.groups, sel.names),
	}
	return runner.New(a.loader, a.guards, append(base, opts...)...)
}

// noDeprecations drops deprecation notices
type noDeprecations struct {
	ui.Reporter
}

func (r *noDeprecations) Info(msg string) {
	if strings.HasPrefix(msg, "DEPRECATION") {
		return
	}
	r.Reporter.Info(msg)
}
