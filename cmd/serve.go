package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meki101/mekitech.co.ke/internal/db"
	httpSrv "github.com/meki101/mekitech.co.ke/internal/http"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the website and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mysqlDB, err := openMySQL(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer mysqlDB.Close()

		redisClient, err := db.OpenRedis(cmd.Context(), cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		server, err := httpSrv.NewServer(cfg, mysqlDB, redisClient)
		if err != nil {
			return fmt.Errorf("build server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start(cfg.HTTP.Addr) }()

		select {
		case <-ctx.Done():
			logger.Log.Info("shutting down http server")
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		}

		timeout := cfg.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Warn("http shutdown incomplete", zap.Error(err))
		}
		return nil
	},
}
