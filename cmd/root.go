package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tphakala/pokereview/cmd/seed"
	"github.com/tphakala/pokereview/cmd/serve"
	"github.com/tphakala/pokereview/internal/buildinfo"
	"github.com/tphakala/pokereview/internal/conf"
	"github.com/tphakala/pokereview/internal/logger"
)

// RootCommand creates and returns the root command. settings is filled from
// the configuration before any subcommand runs.
func RootCommand(settings *conf.Settings) *cobra.Command {
	var (
		configFile string
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:           "pokereview",
		Short:         "Pokemon review service",
		Version:       buildinfo.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config.yaml (default: search ., ~/.config/pokereview, /etc/pokereview)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug output")

	rootCmd.AddCommand(
		seed.Command(settings),
		serve.Command(settings),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := conf.Load(configFile)
		if err != nil {
			return err
		}
		*settings = *loaded

		if debug {
			settings.Debug = true
			if settings.Logging.DefaultLevel != string(logger.LogLevelTrace) {
				settings.Logging.DefaultLevel = string(logger.LogLevelDebug)
			}
		}
		return initialize(settings)
	}

	return rootCmd
}

// initialize installs the central logger configured by settings.
func initialize(settings *conf.Settings) error {
	central, err := logger.NewCentralLogger(&settings.Logging, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetGlobal(central)
	return nil
}
