package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/cmd/worker"
	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/meki101/mekitech.co.ke/internal/db"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:   "mekitech",
		Short: "MekiTech site and background workers",
	}
)

func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (optional)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(worker.NewWorkerCmd())
}

// loadConfig reads the config and initializes the global logger from it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log)
	return cfg, nil
}

func openMySQL(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbx, err := db.OpenMySQL(ctx, cfg.MySQL)
	if err != nil {
		return nil, fmt.Errorf("mysql connect: %w", err)
	}
	return dbx, nil
}
