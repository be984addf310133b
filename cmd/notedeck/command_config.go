package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"notedeck/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	ConfigPath string              `json:"config_path,omitempty" toml:"config_path,omitempty"`
	Service    serviceConfigOutput `json:"service" toml:"service"`
	Logging    loggingConfigOutput `json:"logging" toml:"logging"`
	UI         uiConfigOutput      `json:"ui" toml:"ui"`
}

type serviceConfigOutput struct {
	BaseURL        string `json:"base_url" toml:"base_url"`
	RequestTimeout string `json:"request_timeout" toml:"request_timeout"`
}

type loggingConfigOutput struct {
	Level string `json:"level" toml:"level"`
}

type uiConfigOutput struct {
	Preview bool `json:"preview" toml:"preview"`
}

func newConfigCommand(state *cliState) *cobra.Command {
	var format string
	var defaults bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := state.cfg
			if defaults {
				cfg = config.Default()
			}
			out := buildConfigOutput(cfg)
			if !defaults {
				out.ConfigPath = resolvedConfigPath(state.flags.configPath)
			}
			data, err := marshalConfigOutput(out, format)
			if err != nil {
				return state.fail("config", err)
			}
			fmt.Fprint(state.wiring.stdout, string(data))
			if len(data) > 0 && data[len(data)-1] != '\n' {
				fmt.Fprintln(state.wiring.stdout)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", configFormatTOML, "output format: toml or json")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print built-in defaults instead of the effective config")
	return cmd
}

func buildConfigOutput(cfg config.Config) configOutput {
	return configOutput{
		Service: serviceConfigOutput{
			BaseURL:        cfg.BaseURL(),
			RequestTimeout: cfg.RequestTimeout().String(),
		},
		Logging: loggingConfigOutput{Level: cfg.LogLevel()},
		UI:      uiConfigOutput{Preview: cfg.PreviewEnabled()},
	}
}

func marshalConfigOutput(out configOutput, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", configFormatTOML:
		return toml.Marshal(out)
	case configFormatJSON:
		return json.MarshalIndent(out, "", "  ")
	default:
		return nil, errors.New("unsupported format: use toml or json")
	}
}

func resolvedConfigPath(flagPath string) string {
	if path := strings.TrimSpace(flagPath); path != "" {
		return path
	}
	path, err := config.ConfigPath()
	if err != nil {
		return ""
	}
	return path
}
