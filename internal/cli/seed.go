package cli

import (
	"context"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/database/migration"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/database/seeder"
	"skill-match/migrations"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func seedCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample skills, employers, employees and jobs",
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

			if _, err := (migration.Runner{FS: migrations.FS, Logger: log}).Run(ctx, db.SQLDB()); err != nil {
				return err
			}
			if err := (seeder.Runner{Seeders: seeder.Defaults(time.Now), Logger: log}).Run(ctx, db); err != nil {
				return err
			}

			log.Info("sample accounts",
				zap.String("employer", seeder.SampleUserID("employer", 0).String()),
				zap.String("employee", seeder.SampleUserID("employee", 0).String()),
			)
			return nil
		},
	}
}
