package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skill-match/internal/config"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/domain/job"
	"skill-match/internal/repository"
	"skill-match/internal/usecase"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type reportOutput struct {
	Tiers        dto.TierSummaryResponse  `json:"tiers"`
	MonthlyFills dto.MonthlyFillsResponse `json:"monthly_fills"`
}

func reportCmd(v *viper.Viper) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print tier counts and the monthly fill series as JSON",
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

			employees := repository.NewPostgresEmployeeRepository(db)
			uc := usecase.NewReportUsecase(
				repository.NewPostgresJobRepository(db, employees),
				repository.NewPostgresStatsRepository(db),
				nil,
				usecase.ReportOptions{WindowDays: cfg.Report.WindowDays, TopSkills: cfg.Report.TopSkills},
				log,
			)

			window, err := parseWindow(uc.DefaultWindow(), from, to)
			if err != nil {
				return err
			}

			tiers, err := uc.TierSummary(ctx)
			if err != nil {
				return err
			}
			months, err := uc.MonthlyFills(ctx, window)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reportOutput{
				Tiers:        dto.NewTierSummary(tiers),
				MonthlyFills: dto.NewMonthlyFills(window.From, window.To, months),
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "window start, RFC3339 (default: report.window_days ago)")
	cmd.Flags().StringVar(&to, "to", "", "window end, RFC3339 (default: now)")
	return cmd
}

func parseWindow(def job.TimeRange, from, to string) (job.TimeRange, error) {
	out := def
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return job.TimeRange{}, fmt.Errorf("invalid --from: %w", err)
		}
		out.From = t.UTC()
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return job.TimeRange{}, fmt.Errorf("invalid --to: %w", err)
		}
		out.To = t.UTC()
	}
	return out, nil
}
