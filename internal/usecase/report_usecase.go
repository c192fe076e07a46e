package usecase

import (
	"context"
	"fmt"
	"time"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/report"
	"skill-match/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Dashboard struct {
	Overview     repository.Overview `json:"overview"`
	TopSkills    []report.SkillCount `json:"top_skills"`
	Tiers        report.TierCounts   `json:"tiers"`
	MonthlyFills []report.MonthCount `json:"monthly_fills"`
	WindowStart  time.Time           `json:"window_start"`
	WindowEnd    time.Time           `json:"window_end"`
	GeneratedAt  time.Time           `json:"generated_at"`
}

type ReportUsecase interface {
	TierSummary(ctx context.Context) (report.TierCounts, error)
	MonthlyFills(ctx context.Context, window job.TimeRange) ([]report.MonthCount, error)
	Dashboard(ctx context.Context) (Dashboard, error)
	DefaultWindow() job.TimeRange
}

type ReportOptions struct {
	WindowDays int
	TopSkills  int
	CacheTTL   time.Duration
}

type Report struct {
	jobs   repository.JobRepository
	stats  repository.StatsRepository
	cache  ReportCache
	opts   ReportOptions
	logger *zap.Logger
	now    func() time.Time
}

func NewReportUsecase(jobs repository.JobRepository, stats repository.StatsRepository, cache ReportCache, opts ReportOptions, log *zap.Logger) *Report {
	if opts.WindowDays <= 0 {
		opts.WindowDays = 180
	}
	if opts.TopSkills <= 0 {
		opts.TopSkills = 7
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Report{
		jobs:   jobs,
		stats:  stats,
		cache:  cache,
		opts:   opts,
		logger: log.With(zap.String("component", "report")),
		now:    time.Now,
	}
}

// DefaultWindow is the last WindowDays days ending now.
func (u *Report) DefaultWindow() job.TimeRange {
	now := u.now().UTC()
	return job.TimeRange{From: now.AddDate(0, 0, -u.opts.WindowDays), To: now}
}

func (u *Report) TierSummary(ctx context.Context) (report.TierCounts, error) {
	filled, err := u.jobs.ListFilledJobs(ctx, nil)
	if err != nil {
		return report.TierCounts{}, fmt.Errorf("list filled jobs: %w", err)
	}
	return report.ClassifyFilledJobs(filled), nil
}

// MonthlyFills builds the cumulative series for window. A zero window means
// DefaultWindow.
func (u *Report) MonthlyFills(ctx context.Context, window job.TimeRange) ([]report.MonthCount, error) {
	if window.From.IsZero() && window.To.IsZero() {
		window = u.DefaultWindow()
	}
	if window.From.IsZero() || window.To.IsZero() {
		return nil, ErrInvalidInput
	}
	if !window.Valid() {
		return []report.MonthCount{}, nil
	}

	filled, err := u.jobs.ListFilledJobs(ctx, &window)
	if err != nil {
		return nil, fmt.Errorf("list filled jobs: %w", err)
	}
	return report.MonthlyCumulativeFillCounts(filled, window.From, window.To), nil
}

// Dashboard loads its three inputs concurrently and derives every figure
// from them. The result is cached until the next fill or the cache TTL.
func (u *Report) Dashboard(ctx context.Context) (Dashboard, error) {
	if u.cache != nil {
		var cached Dashboard
		hit, err := u.cache.GetJSON(ctx, DashboardCacheKey, &cached)
		if err != nil {
			u.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	var (
		overview repository.Overview
		all      []job.Job
		filled   []job.Filled
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview, err = u.stats.Overview(gctx)
		if err != nil {
			return fmt.Errorf("load overview: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		all, err = u.jobs.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		filled, err = u.jobs.ListFilledJobs(gctx, nil)
		if err != nil {
			return fmt.Errorf("list filled jobs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	window := u.DefaultWindow()
	d := Dashboard{
		Overview:     overview,
		TopSkills:    report.SkillDemand(all, u.opts.TopSkills),
		Tiers:        report.ClassifyFilledJobs(filled),
		MonthlyFills: report.MonthlyCumulativeFillCounts(filled, window.From, window.To),
		WindowStart:  window.From,
		WindowEnd:    window.To,
		GeneratedAt:  u.now().UTC(),
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, DashboardCacheKey, d, u.opts.CacheTTL); err != nil {
			u.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return d, nil
}
