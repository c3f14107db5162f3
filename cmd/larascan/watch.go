package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/larascan/internal/constants"
	"github.com/ludo-technologies/larascan/service"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [preset...]",
		Short: "Re-run presets whenever PHP files change",
		Long: `Run the selected presets once, then again every time a PHP file below
the project root changes. Stop with Ctrl+C.`,
		RunE:          runWatch,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addCheckFlags(cmd)
	cmd.Flags().Duration("debounce", service.DefaultDebounce, "Quiet period before re-running")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := readCheckOptions(cmd)
	opts.noProgress = true
	debounce, _ := cmd.Flags().GetDuration("debounce")

	uc, pm, err := opts.newUseCase(cmd)
	if err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}
	defer pm.Close()

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	w, err := service.NewWatchService(service.WatchConfig{
		Root:          opts.path,
		DebounceDelay: debounce,
		Logger:        slog.Default(),
	})
	if err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}
	defer w.Stop()

	run := func() {
		start := time.Now()
		if _, err := uc.Execute(ctx, opts.request(cmd, args)); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		slog.Debug("check finished", slog.Duration("elapsed", time.Since(start)))
	}

	run()

	if err := w.Start(ctx); err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}

	for batch := range w.Batches() {
		names := make([]string, len(batch))
		for i, path := range batch {
			names[i] = filepath.Base(path)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "\nChanged: %v\n", names)
		run()
	}
	return nil
}
