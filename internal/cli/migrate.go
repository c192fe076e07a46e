package cli

import (
	"context"
	"fmt"

	"skill-match/internal/config"
	"skill-match/internal/database/migration"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/migrations"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func migrateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime(v, config.NeedDatabase)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			db, err := dbpostgres.Connect(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := migration.Runner{FS: migrations.FS, Logger: log}.Run(ctx, db.SQLDB())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("migrations done", zap.Int("applied", n))
			return nil
		},
	}
}
