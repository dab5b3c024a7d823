// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reviewdesk/citeengine/internal/config"
)

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "citeengine",
		Short:         "Citation offset engine for peer review annotations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newServeMCPCmd(opts),
		newServeHTTPCmd(opts),
		newRenderCmd(opts),
	)
	return cmd
}

// load resolves configuration and builds the logger. Logs go to stderr so
// the stdio MCP transport keeps stdout to itself.
func (o *rootOptions) load(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return cfg, nil, err
		}
	}
	return cfg, cfg.Log.NewLogger(cmd.ErrOrStderr()), nil
}
