package worker

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/meki101/mekitech.co.ke/internal/db"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// NewWorkerCmd returns the parent "worker" command.
func NewWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run background workers",
	}
	// attach subcommands
	cmd.AddCommand(relayCmd)
	cmd.AddCommand(notifierCmd)

	return cmd
}

// setup loads config, initializes logging and metrics, and opens MySQL.
func setup(cmd *cobra.Command) (config.Config, *sqlx.DB, error) {
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	dbx, err := db.OpenMySQL(cmd.Context(), cfg.MySQL)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("mysql connect: %w", err)
	}
	return cfg, dbx, nil
}
