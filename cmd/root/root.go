// Package root contains the root command for the application
package root

import (
	"fmt"

	"jose/statement-ingest/internal/config"
	"jose/statement-ingest/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	LogLevel  string
	LogFormat string
	Database  string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// AppConfig is loaded before any subcommand runs
	AppConfig *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "jose-ingest",
		Short: "Import bank statements into José and categorize their transactions.",
		Long: `jose-ingest parses statement text, CSV, OFX and PDF files into transactions.
Lines no pattern recognizes are sent to an AI model, every transaction is
sign-normalized, categorized from personal history and crowd hints,
deduplicated and stored.`,
		SilenceUsage:      true,
		PersistentPreRunE: persistentPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// SharedFlags holds flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Database, "database", "", "SQLite database path")
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	// .env is optional
	if _, err := config.LoadEnv(); err != nil {
		Log.WithError(err).Warn("Failed to load .env file")
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	ApplyFlags(cfg, SharedFlags)

	AppConfig = cfg
	Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	Log.Debug("Configuration loaded",
		logging.Field{Key: "database", Value: cfg.Database.Path},
		logging.Field{Key: logging.FieldProvider, Value: cfg.AI.Provider})
	return nil
}

// ApplyFlags overrides configuration values with the flags that were set.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
	if flags.Database != "" {
		cfg.Database.Path = flags.Database
	}
}
