package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"notedeck/internal/app"
	"notedeck/internal/config"
	"notedeck/internal/logging"
)

type commandWiring struct {
	stdin              io.Reader
	stdout             io.Writer
	stderr             io.Writer
	loadConfig         func(path string) (config.Config, error)
	newClient          clientFactory
	runUI              func(api app.NotesAPI, opts app.Options) error
	configureUILogging func(level logging.Level) logging.Logger
	serve              serveFunc
}

func defaultCommandWiring(stdin io.Reader, stdout, stderr io.Writer) commandWiring {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdin:              stdin,
		stdout:             stdout,
		stderr:             stderr,
		loadConfig:         loadConfigFile,
		newClient:          newNotesClient,
		runUI:              app.Run,
		configureUILogging: configureUILogging,
		serve:              serveHTTP,
	}
}

// globalFlags are shared by every subcommand and override the config file.
type globalFlags struct {
	configPath string
	baseURL    string
	logLevel   string
}

// cliState is filled in by the root command before any subcommand runs.
type cliState struct {
	wiring commandWiring
	flags  globalFlags
	cfg    config.Config
	logger logging.Logger
}

func newRootCommand(wiring commandWiring) *cobra.Command {
	state := &cliState{wiring: wiring, logger: logging.Nop()}
	ui := newUICommand(state)

	root := &cobra.Command{
		Use:           "notedeck",
		Short:         "Browse and edit a remote notes collection",
		Long:          "notedeck keeps a local view of a remote notes collection in sync and edits it from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.prepare()
		},
		RunE: ui.RunE,
	}
	root.SetIn(wiring.stdin)
	root.SetOut(wiring.stdout)
	root.SetErr(wiring.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&state.flags.configPath, "config", "", "path to config.toml (default ~/.notedeck/config.toml)")
	flags.StringVar(&state.flags.baseURL, "base-url", "", "collection endpoint, e.g. http://127.0.0.1:8000/api/notes/")
	flags.StringVar(&state.flags.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		ui,
		newListCommand(state),
		newAddCommand(state),
		newEditCommand(state),
		newRemoveCommand(state),
		newConfigCommand(state),
		newFakeServiceCommand(state),
	)
	return root
}

func (s *cliState) prepare() error {
	cfg, err := s.wiring.loadConfig(s.flags.configPath)
	if err != nil {
		return s.fail("config", err)
	}
	if value := strings.TrimSpace(s.flags.baseURL); value != "" {
		cfg.Service.BaseURL = value
	}
	if value := strings.TrimSpace(s.flags.logLevel); value != "" {
		cfg.Logging.Level = value
	}
	if err := cfg.Validate(); err != nil {
		return s.fail("config", err)
	}
	s.cfg = cfg
	s.logger = logging.New(s.wiring.stderr, logging.ParseLevel(cfg.LogLevel()))
	return nil
}

// fail reports err on stderr with a command label and returns it so cobra
// exits non-zero.
func (s *cliState) fail(label string, err error) error {
	if err == nil {
		return nil
	}
	writeError(s.wiring.stderr, label, err)
	return err
}

func loadConfigFile(path string) (config.Config, error) {
	if strings.TrimSpace(path) == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}
