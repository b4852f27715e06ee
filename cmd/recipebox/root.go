package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recipebox/internal/config"
	"recipebox/internal/pkg/logging"
)

var (
	envFile string
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "recipebox",
	Short: "Recipe collection with favorites, search and recommendations",
	Long: `recipebox keeps a recipe collection in memory and serves it over HTTP.

Example usage:
  recipebox serve                                   # Start the API on HTTP_ADDR
  recipebox github-user octocat                     # Look up a GitHub profile
  recipebox register --username alice --email a@b.c --password secret1`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initConfig() error {
	var err error
	cfg, err = config.Load(envFile)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err = logging.New(level, cfg.IsProd())
	return err
}
