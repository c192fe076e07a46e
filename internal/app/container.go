package app

import (
	"context"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/database"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/infrastructure/cache"
	"skill-match/internal/metrics"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/repository"
	"skill-match/internal/usecase"
	"skill-match/internal/ws"

	"go.uber.org/zap"
)

type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Metrics
	Hub     *ws.Hub
	JWT     jwt.Service

	Jobs      repository.JobRepository
	Employees repository.EmployeeRepository
	Employers repository.EmployerRepository
	Stats     repository.StatsRepository

	Matching usecase.MatchingUsecase
	Fill     usecase.FillUsecase
	Reports  usecase.ReportUsecase
}

// NewContainer connects to Postgres and Redis and wires repositories and
// usecases. Redis is optional; an unreachable cache only disables caching.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(connectCtx, cfg.Redis, logger.Named("cache"))
	return Wire(cfg, db, redis, logger), nil
}

// Wire builds the object graph over already opened resources.
func Wire(cfg config.Config, db database.DB, redis *cache.Redis, logger *zap.Logger) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := metrics.New()
	hub := ws.NewHub(logger.Named("ws"))

	employees := repository.NewPostgresEmployeeRepository(db)
	jobs := repository.NewPostgresJobRepository(db, employees)
	employers := repository.NewPostgresEmployerRepository(db)
	stats := repository.NewPostgresStatsRepository(db)

	var scoreCache usecase.ScoreCache
	var reportCache usecase.ReportCache
	if redis != nil {
		scoreCache = redis
		reportCache = redis
	}

	matchingUC := usecase.NewMatchingUsecase(jobs, employees, employers, scoreCache, cfg.Redis.ScoreTTL, m, logger)
	fillUC := usecase.NewFillUsecase(jobs, employees, logger,
		usecase.WithFillNotifier(hub),
		usecase.WithReportCache(reportCache),
		usecase.WithFillMetrics(m),
	)
	reportUC := usecase.NewReportUsecase(jobs, stats, reportCache, usecase.ReportOptions{
		WindowDays: cfg.Report.WindowDays,
		TopSkills:  cfg.Report.TopSkills,
		CacheTTL:   cfg.Redis.ReportTTL,
	}, logger)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Cache:     redis,
		Metrics:   m,
		Hub:       hub,
		JWT:       jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.AccessExpiresIn),
		Jobs:      jobs,
		Employees: employees,
		Employers: employers,
		Stats:     stats,
		Matching:  matchingUC,
		Fill:      fillUC,
		Reports:   reportUC,
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
