package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/camden-git/policeportal/config"
	"github.com/camden-git/policeportal/database"
)

var (
	cfg    config.Config
	logger *zap.Logger

	// --db overrides DATABASE_PATH (sqlite) or DATABASE_DSN (postgres)
	dbFlag string
)

var rootCmd = &cobra.Command{
	Use:   "policeportal",
	Short: "Police department case and personnel records service",
	Long: `policeportal serves the case and personnel record API: filtered
listings, create/update/delete with attachments, a dashboard and exports.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
		}

		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger, err = newLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		for _, w := range cfg.Warnings {
			logger.Warn("configuration", zap.String("warning", w))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "database path (sqlite) or DSN (postgres); overrides the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd, userCmd)
}

func newLogger(c config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.LogFormat == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL '%s': %w", c.LogLevel, err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// openDatabase connects using the configuration and the --db override.
func openDatabase() (*gorm.DB, error) {
	source := cfg.DatabasePath
	if cfg.DatabaseDriver == config.DriverPostgres {
		source = cfg.DatabaseDSN
	}
	if dbFlag != "" {
		source = dbFlag
	}

	if cfg.DatabaseDriver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(source), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return database.InitGormDB(cfg.DatabaseDriver, source, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
