// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradelight/internal/auth"
	"tradelight/internal/config"
	"tradelight/internal/journal"
	"tradelight/internal/logging"
	"tradelight/internal/notify"
	"tradelight/internal/settings"
	"tradelight/internal/store"
	"tradelight/internal/store/mongostore"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-06-01"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Remote   store.DocumentStore
	Cache    store.LocalCache
	Journal  *journal.DayLogStore
	Models   *journal.ModelList
	Settings *settings.Settings
	Auth     auth.Provider
	Notifier notify.Notifier
	Offline  bool
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Notifier: notify.Multi{notify.NewTerminal(), notify.NewLog(logger)},
	}

	// Local cache backs the journal, settings, models, and session slots.
	cache, err := store.NewSQLiteCache(cfg.Cache.Path)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Cache.Path).
			Msg("Failed to open local cache, falling back to in-memory cache")
		app.Cache = store.NewMemoryCache()
	} else {
		app.Cache = cache
		logger.Debug().Str("path", cfg.Cache.Path).Msg("Local cache opened")
	}

	// Remote document store, or an in-memory stand-in when offline.
	if cfg.Remote.URI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Remote.ConnectTimeout)
		remote, err := mongostore.Connect(ctx, mongostore.Config{
			URI:            cfg.Remote.URI,
			Database:       cfg.Remote.Database,
			ConnectTimeout: cfg.Remote.ConnectTimeout,
		}, logger)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("Remote store unreachable, running offline")
			app.Remote = store.NewMemoryStore()
			app.Offline = true
		} else {
			app.Remote = remote
			logger.Debug().Str("database", cfg.Remote.Database).Msg("Remote store connected")
		}
	} else {
		app.Remote = store.NewMemoryStore()
		app.Offline = true
		logger.Debug().Msg("No remote store configured, running offline")
	}

	app.Journal = journal.NewDayLogStore(app.Remote, app.Cache, app.Notifier, logger)
	app.Models = journal.NewModelList(app.Cache)
	app.Settings = settings.New(app.Cache).WithDefaultGoal(cfg.Dashboard.LogGoal)
	app.Auth = auth.NewCachedProvider(auth.NewStaticProvider(auth.Identity{
		UserID:      cfg.User.ID,
		Email:       cfg.User.Email,
		DisplayName: cfg.User.DisplayName,
	}), app.Cache)

	rootCmd := &cobra.Command{
		Use:   "tradelight",
		Short: "TradeLight - a local-first futures trading journal",
		Long: `TradeLight is a trading journal for futures day traders.

Day records live in a local cache and sync to a remote document store,
so the journal stays usable offline. Log trades per day, review a
calendar dashboard with aggregate stats, and track progress toward a
monthly logging goal.

Use 'tradelight help <command>' for more information about a command.`,
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
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/tradelight)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addAuthCommands(rootCmd, app)
	addLogCommands(rootCmd, app)
	addDashboardCommands(rootCmd, app)
	addModelCommands(rootCmd, app)
	addSettingsCommands(rootCmd, app)
	addHelpCommands(rootCmd, app)

	return rootCmd
}

// userID resolves the journal owner, preferring the signed-in session.
func (app *App) userID(ctx context.Context) (string, error) {
	identity, err := app.Auth.Current(ctx)
	if err == nil && identity.UserID != "" {
		return identity.UserID, nil
	}
	if app.Config.User.ID != "" {
		return app.Config.User.ID, nil
	}
	return "", err
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
				output.Printf("TradeLight v%s\n", Version)
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
			return showConfig(output, app)
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
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, app *App) error {
	cfg := app.Config

	output.Bold("Remote Store")
	if cfg.Remote.URI == "" {
		output.Printf("  URI:             %s\n", output.DimText("(offline)"))
	} else {
		output.Printf("  URI:             %s\n", cfg.Remote.URI)
	}
	output.Printf("  Database:        %s\n", cfg.Remote.Database)
	output.Printf("  Connect Timeout: %s\n", cfg.Remote.ConnectTimeout)
	output.Println()

	output.Bold("Local Cache")
	output.Printf("  Path:            %s\n", cfg.Cache.Path)
	output.Println()

	output.Bold("Journal")
	output.Printf("  Autosave Window: %dms\n", cfg.Journal.DebounceMs)
	output.Println()

	output.Bold("Dashboard")
	output.Printf("  Monthly Goal:    %d logged days\n", cfg.Dashboard.LogGoal)
	output.Println()

	output.Bold("User")
	output.Printf("  ID:              %s\n", cfg.User.ID)
	output.Printf("  Email:           %s\n", cfg.User.Email)
	output.Printf("  Display Name:    %s\n", cfg.User.DisplayName)

	if app.Offline {
		output.Println()
		output.Warning("Running offline: changes are cached locally only")
	}
	return nil
}
