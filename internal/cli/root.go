// Package cli provides the command-line interface for the journal.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"crypto-journal/internal/audit"
	"crypto-journal/internal/config"
	"crypto-journal/internal/journal"
	"crypto-journal/internal/logging"
	"crypto-journal/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-06-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.KV
	Service *journal.Service
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	var provider audit.Provider
	if cfg.HasAuditCredentials() {
		provider = audit.NewOpenAIProvider(cfg.Credentials.OpenAI.APIKey, cfg.Audit.Model, cfg.Audit.MaxTokens)
		logger.Debug().
			Str("model", cfg.Audit.Model).
			Int("max_tokens", cfg.Audit.MaxTokens).
			Msg("OpenAI audit provider initialized")
	}

	kv, err := store.NewSQLiteKV(cfg.Database.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open database, changes this session will not persist")
		app.Store = store.NewMemoryKV()
	} else {
		app.Store = kv
		logger.Debug().Str("path", cfg.Database.Path).Msg("SQLite store initialized")
	}

	repo := store.NewRepository(app.Store, logging.WithOperation(logger, "store"))
	app.Service = journal.NewService(repo, provider, logging.WithOperation(logger, "journal"))

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Crypto Journal - trade ledger with AI audits",
		Long: `Crypto Journal is a trading journal CLI for discretionary crypto traders.

Record trades as you open and close them, track performance metrics,
and run AI audits over your trading history for an outside opinion.

Use 'journal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Store != nil {
				_ = app.Store.Close()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/crypto-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addDashboardCommand(rootCmd, app)
	addAuditCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addBackupCommands(rootCmd, app)
	addSettingsCommands(rootCmd, app)

	return rootCmd
}

func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Crypto Journal v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Database")
			output.Printf("  Path:          %s\n", app.Config.Database.Path)
			output.Println()
			output.Bold("Audit")
			output.Printf("  Model:         %s\n", app.Config.Audit.Model)
			output.Printf("  Max Tokens:    %d\n", app.Config.Audit.MaxTokens)
			output.Printf("  Key Present:   %v\n", app.Config.HasAuditCredentials())
			output.Println()
			output.Bold("Logging")
			output.Printf("  Level:         %s\n", app.Config.Logging.Level)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}
