package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/larascan/app"
	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/constants"
	"github.com/ludo-technologies/larascan/internal/logging"
	"github.com/ludo-technologies/larascan/service"
)

// CheckExitError carries the process exit code of a check run
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// checkOptions are the flags shared by check and watch
type checkOptions struct {
	path       string
	configPath string
	format     string
	mode       string
	all        bool
	verbose    bool
	noProgress bool
	timeout    time.Duration
}

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("path", "p", ".", "Laravel project root")
	cmd.Flags().StringP("config", "c", "", "Path to config file (default: discovered from --path upward)")
	cmd.Flags().StringP("format", "f", "", "Output format: text, json, yaml (default from config)")
	cmd.Flags().String("mode", "", "Scan mode: ast or text (default from config)")
	cmd.Flags().BoolP("all", "a", false, "Report every violation instead of stopping each preset at the first")
	cmd.Flags().BoolP("verbose", "v", false, "Log debug output to stderr")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")
	cmd.Flags().Duration("timeout", 0, "Abort preset evaluation after this long (default 5m)")
}

func readCheckOptions(cmd *cobra.Command) checkOptions {
	var o checkOptions
	o.path, _ = cmd.Flags().GetString("path")
	o.configPath, _ = cmd.Flags().GetString("config")
	o.format, _ = cmd.Flags().GetString("format")
	o.mode, _ = cmd.Flags().GetString("mode")
	o.all, _ = cmd.Flags().GetBool("all")
	o.verbose, _ = cmd.Flags().GetBool("verbose")
	o.noProgress, _ = cmd.Flags().GetBool("no-progress")
	o.timeout, _ = cmd.Flags().GetDuration("timeout")
	return o
}

func (o checkOptions) request(cmd *cobra.Command, presets []string) domain.CheckRequest {
	return domain.CheckRequest{
		ProjectRoot:  o.path,
		ConfigPath:   o.configPath,
		Presets:      presets,
		Aggregate:    o.all,
		ScanMode:     domain.ScanMode(o.mode),
		Timeout:      o.timeout,
		OutputFormat: domain.OutputFormat(o.format),
		OutputWriter: cmd.OutOrStdout(),
	}
}

// newUseCase configures logging and progress from the discovered config
func (o checkOptions) newUseCase(cmd *cobra.Command) (*app.CheckUseCase, domain.ProgressManager, error) {
	cfg, err := service.NewConfigurationLoader().LoadConfig(o.configPath, o.path)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, o.verbose)

	format := o.format
	if format == "" {
		format = cfg.Report.Format
	}
	pm := service.NewProgressManager(cfg.Report.Progress && !o.noProgress && format == string(domain.OutputFormatText))

	uc := app.NewCheckUseCaseBuilder().
		WithLogger(logger).
		WithProgress(pm).
		Build()
	return uc, pm, nil
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [preset...]",
		Short: "Check Laravel classes against convention presets",
		Long: `Run convention presets against the classes of a Laravel project.

With no preset arguments every preset enabled in the config runs (all of
them when none are enabled). Each preset stops at its first violation
unless --all is given.

Exit codes:
  0 - All presets pass
  1 - At least one convention violation
  2 - Tool error (bad config, unknown preset, unreadable project)

Examples:
  # Check every preset in the current project
  larascan check

  # Check jobs and controllers only
  larascan check jobs controllers

  # Collect every violation as JSON
  larascan check --all --format json --path ../shop`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addCheckFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := readCheckOptions(cmd)

	uc, pm, err := opts.newUseCase(cmd)
	if err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}
	defer pm.Close()

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	resp, err := uc.Execute(ctx, opts.request(cmd, args))
	if err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}
	if !resp.Passed {
		return &CheckExitError{Code: constants.ExitViolation}
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
