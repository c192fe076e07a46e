package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill-match/internal/app"
	"skill-match/internal/config"
	"skill-match/internal/database/migration"
	"skill-match/migrations"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func serveCmd(v *viper.Viper) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the fill notification stream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime(v, config.NeedDatabase, config.NeedJWT)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			bootstrap, cleanup, err := app.Bootstrap(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("bootstrap app: %w", err)
			}
			defer func() {
				if err := cleanup(); err != nil {
					log.Warn("cleanup error", zap.Error(err))
				}
			}()

			if migrate {
				n, err := migration.Runner{FS: migrations.FS, Logger: log}.Run(ctx, bootstrap.Container.DB.SQLDB())
				if err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				log.Info("migrations done", zap.Int("applied", n))
			}

			addr, err := app.ListenAddr(cfg.App.HTTPPort)
			if err != nil {
				return fmt.Errorf("invalid HTTP port: %w", err)
			}

			go bootstrap.Container.Hub.Run(ctx)

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.App.Environment))
				errCh <- bootstrap.Fiber.Listen(addr)
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
			case sig := <-sigCh:
				log.Info("shutting down", zap.String("signal", sig.String()))
				cancel()
				shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
				defer stop()
				if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
					log.Warn("shutdown error", zap.Error(err))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
