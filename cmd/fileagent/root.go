package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FileAgent/backend/internal/infrastructure/server"
	"github.com/GriffinCanCode/FileAgent/backend/internal/service"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/paths"
)

type ctxKey string

const appCtxKey ctxKey = "app"

// app is what every subcommand needs, built once by the root command
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	agent  *service.Agent
}

type rootOpts struct {
	configFile string
	basePath   string
	model      string
	noIntent   bool
	verbose    bool
}

func NewRootCommand() *cobra.Command {
	opts := &rootOpts{}

	rootCmd := &cobra.Command{
		Use:           "fileagent",
		Short:         "fileagent manages local files from plain-language requests",
		Long:          `fileagent finds, lists, creates and moves files. Requests can be given as explicit operations or as plain language resolved by a local Ollama model.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build()
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appCtxKey, a))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, ok := cmd.Context().Value(appCtxKey).(*app); ok {
				a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML or TOML config file")
	flags.StringVarP(&opts.basePath, "base", "b", "", "Default directory for operations (defaults to BASE_PATH or home)")
	flags.StringVar(&opts.model, "model", "", "Ollama model for intent resolution")
	flags.BoolVar(&opts.noIntent, "no-intent", false, "Disable the language model resolver")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(opsCommand())
	rootCmd.AddCommand(execCommand())
	rootCmd.AddCommand(askCommand())
	rootCmd.AddCommand(serveCommand())

	return rootCmd
}

func (o *rootOpts) build() (*app, error) {
	if o.configFile != "" {
		if err := os.Setenv("CONFIG_FILE", o.configFile); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.basePath != "" {
		cfg.Files.BasePath = paths.Clean(o.basePath)
	}
	if o.model != "" {
		cfg.Intent.Model = o.model
	}
	if o.noIntent {
		cfg.Intent.Enabled = false
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	// one-shot commands stay quiet unless asked; serve uses cfg as loaded
	cliCfg := *cfg
	if !o.verbose {
		if lvl, err := zapcore.ParseLevel(cfg.Logging.Level); err != nil || lvl < zapcore.WarnLevel {
			cliCfg.Logging.Level = "warn"
		}
	}

	logger, err := server.NewLogger(&cliCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	agent, _, err := server.NewAgent(cfg, logger, monitoring.NewMetrics())
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, agent: agent}, nil
}

func getApp(cmd *cobra.Command) *app {
	a, ok := cmd.Context().Value(appCtxKey).(*app)
	if !ok {
		panic("fileagent: command context not initialized")
	}
	return a
}
