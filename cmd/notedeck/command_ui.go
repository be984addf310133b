package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"notedeck/internal/app"
	"notedeck/internal/config"
	"notedeck/internal/logging"
)

func newUICommand(state *cliState) *cobra.Command {
	var noPreview bool
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := state.cfg
			logger := logging.Nop()
			if state.wiring.configureUILogging != nil {
				logger = state.wiring.configureUILogging(logging.ParseLevel(cfg.LogLevel()))
			}
			api, err := state.wiring.newClient(cfg, logger)
			if err != nil {
				return state.fail("ui", err)
			}
			logger.Info("ui starting", logging.F("base_url", cfg.BaseURL()))
			opts := app.Options{
				Logger:         logger,
				RequestTimeout: cfg.RequestTimeout(),
				Preview:        cfg.PreviewEnabled() && !noPreview,
			}
			return state.fail("ui", state.wiring.runUI(api, opts))
		},
	}
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "hide the markdown preview pane")
	return cmd
}

// configureUILogging points the logger at ~/.notedeck/ui.log because the
// terminal belongs to the UI while it runs.
func configureUILogging(level logging.Level) logging.Logger {
	logPath, err := config.UILogPath()
	if err != nil {
		return logging.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return logging.Nop()
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logging.Nop()
	}
	return logging.New(file, level)
}
