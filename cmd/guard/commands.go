package guard

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arthur-debert/guard/internal/version"
	"github.com/arthur-debert/guard/pkg/config"
	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/guardfile"
	"github.com/arthur-debert/guard/pkg/listener"
	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/arthur-debert/guard/pkg/metrics"
	"github.com/arthur-debert/guard/pkg/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newMatchCmd(flags *globalFlags) *cobra.Command {
	sel := &selection{}
	cmd := &cobra.Command{
		Use:     "match <paths...>",
		Short:   MsgMatchShort,
		Long:    MsgMatchLong,
		Example: MsgMatchExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, nil)
			if err != nil {
				return err
			}
			return a.printer.Matches(a.runner(sel).Evaluate(args))
		},
	}
	sel.register(cmd)
	return cmd
}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	sel := &selection{}
	cmd := &cobra.Command{
		Use:     "check <paths...>",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, nil)
			if err != nil {
				return err
			}
			if !a.runner(sel).Any(args) {
				return ErrNoMatch
			}
			return nil
		},
	}
	sel.register(cmd)
	return cmd
}

func newShowCmd(flags *globalFlags) *cobra.Command {
	sel := &selection{}
	cmd := &cobra.Command{
		Use:     "show",
		Short:   MsgShowShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, nil)
			if err != nil {
				return err
			}
			guards := a.runner(sel).Guards()
			if len(guards) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), MsgNoGuards)
				return err
			}
			return a.printer.Guards(runner.Summaries(guards))
		},
	}
	sel.register(cmd)
	return cmd
}

func newWatchCmd(flags *globalFlags) *cobra.Command {
	sel := &selection{}
	var metricsAddr string

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.watch")

			extra := map[string]interface{}{}
			if cmd.Flags().Changed("metrics-addr") {
				extra["metrics.addr"] = metricsAddr
			}
			a, err := newApp(cmd, flags, extra)
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			l, err := listener.New(listener.Config{
				Root:       cwd,
				Dirs:       a.cfg.Listen.Dirs,
				Latency:    a.cfg.Listen.Latency,
				Ignore:     a.cfg.Listen.Ignore,
				SkipHidden: a.cfg.Listen.SkipHidden,
			})
			if err != nil {
				return err
			}

			opts := []runner.Option{runner.WithRoot(l.Root())}
			if a.cfg.Metrics.Addr != "" {
				m := metrics.New()
				opts = append(opts, runner.WithMetrics(m))
				serveMetrics(ctx, cmd, a.cfg.Metrics.Addr, m)
			}
			r := a.runner(sel, opts...)

			guardfilePath, _ := a.loader.GuardfilePath()
			fmt.Fprintf(cmd.ErrOrStderr(), MsgWatching, guardfilePath, len(r.Guards()))

			return l.Listen(ctx, func(paths []string) {
				if err := r.Process(ctx, paths); err != nil {
					logger.Error().Err(err).Strs("paths", paths).Msg("Batch failed")
				}
			})
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", MsgFlagMetricsAddr)
	return cmd
}

func serveMetrics(ctx context.Context, cmd *cobra.Command, addr string, m *metrics.Metrics) {
	logger := logging.GetLogger("cmd.watch")

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Str("addr", addr).Msg(MsgErrMetricsServer)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), MsgMetricsServing, addr)
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init [dir]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path := filepath.Join(dir, guardfile.Names[0])

			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrFileWrite, MsgErrGuardfileExists, path)
			}

			content, err := guardfile.Generate()
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, content, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgGuardfileWritten, path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "guard version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(guard completion bash)

Zsh:
  $ guard completion zsh > "${fpath[1]}/_guard"

Fish:
  $ guard completion fish | source

PowerShell:
  PS> guard completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "GUARD",
				Section: "1",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "cannot generate man pages")
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "man", MsgFlagManDir)
	return cmd
}
