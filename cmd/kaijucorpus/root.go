package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/go-kaiju-corpus/internal/config"
	"github.com/example/go-kaiju-corpus/internal/corpus"
	"github.com/example/go-kaiju-corpus/internal/logging"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "kaijucorpus",
		Short:         "Build kaiju Wikipedia corpora and evaluate segmentation models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newTagCmd())
	cmd.AddCommand(newEvaluateCmd())
	cmd.AddCommand(newSourcesCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	logging.Setup(os.Stderr, levelStr)
}

func requireConfig() (config.Config, error) {
	if activeCfg.Paths.DataDir == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// resolveSources returns the configured source list, or the built-in one.
func resolveSources(cfg config.Config) ([]corpus.Source, error) {
	if cfg.Paths.SourcesFile == "" {
		return corpus.DefaultSources(), nil
	}
	return corpus.LoadSources(cfg.Paths.SourcesFile)
}
