// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/statement-insights/internal/config"
	"fjacquet/statement-insights/internal/container"
	"fjacquet/statement-insights/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input   string
	Output  string
	Config  string
	Budgets string
	Level   string
}

var (
	// Log is used until the container is initialized.
	Log logging.Logger = logging.NewLogrusAdapter(config.StartupLogLevel(), "text")

	// AppConfig is the configuration loaded before any subcommand runs.
	AppConfig *config.Config

	// AppContainer is the dependency container shared by the subcommands.
	AppContainer *container.Container

	// SharedFlags holds the persistent flags.
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "statement-insights",
		Short: "Extract transactions from bank statement PDFs and report spending against budgets.",
		Long: `statement-insights extracts transactions from bank statement PDFs with the Gemini API,
then summarizes spending, breaks it down by category and compares it with monthly budgets.

Transactions can also be read back from the CSV or JSON files the extract command writes.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statement-insights!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to release resources")
			}
		},
	}
)

var initOnce sync.Once

// Init registers the persistent flags. Calling it again has no effect.
func Init() {
	initOnce.Do(registerFlags)
}

func registerFlags() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (PDF statement, CSV or JSON)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Config, "config", "", "Config file (default searches $HOME/.statement-insights, .statement-insights and .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Budgets, "budgets", "", "Budgets file (overrides budgets.file)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Level, "log-level", "", "Log level (overrides log.level)")
}

// Initialize loads configuration and builds the container unless a container
// has already been provided.
func Initialize() error {
	if AppContainer != nil {
		return nil
	}

	cfg, err := config.InitializeConfigFromFile(SharedFlags.Config)
	if err != nil {
		return err
	}
	if SharedFlags.Budgets != "" {
		cfg.Budgets.File = SharedFlags.Budgets
	}
	if SharedFlags.Level != "" {
		cfg.Log.Level = SharedFlags.Level
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// GetContainer returns the application container, or nil before Initialize.
func GetContainer() *container.Container {
	return AppContainer
}

// GetLogger returns the application logger.
func GetLogger() logging.Logger {
	return Log
}

// SetContainer replaces the application container, e.g. with one built around a mock client.
func SetContainer(c *container.Container) {
	AppContainer = c
	if c != nil {
		AppConfig = c.GetConfig()
		Log = c.GetLogger()
	}
}
