package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/tjm-calculator/internal/config"
	"github.com/iwvelando/tjm-calculator/internal/notify"
	"github.com/iwvelando/tjm-calculator/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	flagConfig   string
	flagLogLevel string

	conf   *config.Configuration
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "tjm-calculator",
	Short:         "Minimum day rate calculator for French micro-entrepreneurs",
	Long:          "Compute the day rate (TJM) needed to reach a monthly net income under the micro-entreprise service regime.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Flags().Changed("config"))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(calcCmd, interactiveCmd, serveCmd, versionCmd)
}

// setup loads the configuration and the logger. A missing default config
// file is not an error; an explicitly requested one is.
func setup(explicitConfig bool) error {
	loaded, err := config.LoadConfiguration(flagConfig)
	if err != nil {
		if explicitConfig {
			return fmt.Errorf("failed to load configuration at %s: %w", flagConfig, err)
		}
		if _, statErr := os.Stat(flagConfig); statErr == nil || !errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("failed to load configuration at %s: %w", flagConfig, err)
		}
		loaded = config.Default()
	}
	conf = loaded

	logger, err = initializeLogger(conf.Logging, flagLogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return nil
}

// newSender builds the notification client from the loaded configuration.
func newSender() (*notify.Client, error) {
	timeout, err := conf.NotificationTimeout()
	if err != nil {
		return nil, err
	}
	return notify.NewClient(logger, conf.Notification.Endpoint, timeout), nil
}
