package cmd

import (
	"fmt"

	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations (dev: DROP & CREATE tables)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		sqlDB, err := openMySQL(ctx, cfg)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		// FOREIGN_KEY_CHECKS is per session, so everything runs on one connection
		conn, err := sqlDB.Connx(ctx)
		if err != nil {
			return fmt.Errorf("acquire conn: %w", err)
		}
		defer conn.Close()

		if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
			return fmt.Errorf("disable fk checks: %w", err)
		}
		if _, err := conn.ExecContext(ctx, migrations.Init); err != nil {
			_, _ = conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1")
			return fmt.Errorf("exec migration: %w", err)
		}
		if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1"); err != nil {
			return fmt.Errorf("enable fk checks: %w", err)
		}

		logger.Log.Info("migration complete")
		return nil
	},
}
