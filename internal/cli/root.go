// Package cli is the terminal front end: one cobra command per view, each driven through the
// session controller so it behaves exactly like an interactive screen would.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/nba-totals/internal/config"
	"github.com/maxviazov/nba-totals/internal/logger"
	"github.com/maxviazov/nba-totals/internal/server"
	"github.com/maxviazov/nba-totals/internal/session"
)

type options struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	asJSON     bool
	verbose    bool
}

// env is what every subcommand gets once the root has loaded config.
type env struct {
	opts *options
	cfg  *config.Config
	log  zerolog.Logger
	ctrl *session.Controller
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	e := &env{opts: opts}

	root := &cobra.Command{
		Use:           "nbatotals",
		Short:         "Browse NBA player season totals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd)
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "path to config.yaml (env APP_* overrides apply)")
	f.StringVar(&opts.baseURL, "base-url", "", "override the upstream base URL")
	f.DurationVar(&opts.timeout, "timeout", 0, "override the per-request upstream timeout")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newTeamsCommand(e),
		newRosterCommand(e),
		newSearchCommand(e),
		newRangeCommand(e),
		newCompareCommand(e),
		newServeCommand(e),
	)
	return root
}

// Execute runs the CLI with signal-aware context and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}

func (e *env) init(cmd *cobra.Command) error {
	cfg, err := config.Load(e.opts.configPath)
	if err != nil {
		return err
	}
	if e.opts.baseURL != "" {
		cfg.Upstream.BaseURL = e.opts.baseURL
	}
	if e.opts.timeout > 0 {
		cfg.Upstream.Timeout = e.opts.timeout
	}

	// terminal output belongs to the command; logs go to stderr and stay quiet unless asked
	lc := cfg.Logger
	lc.Format = "console"
	lc.Level = "warn"
	if e.opts.verbose {
		lc.Level = "debug"
	}
	log, err := logger.Build(&lc, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	stack := server.NewStack(cfg, log, nil)
	e.cfg = cfg
	e.log = log
	e.ctrl = session.NewController(stack.Service, session.NewStore(log, nil), log)
	return nil
}

func loggerFor(e *env) (zerolog.Logger, error) {
	return logger.New(&e.cfg.Logger)
}

// await blocks until the request settles or the command is interrupted.
func (e *env) await(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
