package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/user"
	"skill-match/internal/logger"
	"skill-match/internal/metrics"
	"skill-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FillNotifier receives fill events after the store has committed them.
type FillNotifier interface {
	JobFilled(ctx context.Context, ev job.FilledEvent)
}

type FillUsecase interface {
	Apply(ctx context.Context, jobID uuid.UUID, account user.Account) (job.Job, error)
}

type Fill struct {
	jobs      repository.JobRepository
	employees repository.EmployeeRepository
	notifier  FillNotifier
	reports   ReportCache
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

type FillOption func(*Fill)

func WithClock(now func() time.Time) FillOption {
	return func(f *Fill) {
		if now != nil {
			f.now = now
		}
	}
}

func WithFillNotifier(n FillNotifier) FillOption {
	return func(f *Fill) { f.notifier = n }
}

func WithReportCache(c ReportCache) FillOption {
	return func(f *Fill) { f.reports = c }
}

func WithFillMetrics(m *metrics.Metrics) FillOption {
	return func(f *Fill) { f.metrics = m }
}

func NewFillUsecase(jobs repository.JobRepository, employees repository.EmployeeRepository, log *zap.Logger, opts ...FillOption) *Fill {
	f := &Fill{
		jobs:      jobs,
		employees: employees,
		logger:    logger.WithFields(log, zap.String("component", "fill")),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply fills jobID with the caller's employee profile. The only write is a
// conditional update on filled_by IS NULL, so of two concurrent applicants
// exactly one wins and the other gets ErrAlreadyFilled.
func (u *Fill) Apply(ctx context.Context, jobID uuid.UUID, account user.Account) (job.Job, error) {
	log := u.logger.With(logger.FillFields(jobID, uuid.Nil)...)

	if account.ID == uuid.Nil {
		return job.Job{}, ErrUnauthorized
	}
	if !account.Role.CanApply() {
		u.metrics.ObserveFill(metrics.OutcomeRejected)
		log.Info("fill rejected", zap.String("role", account.Role.String()))
		return job.Job{}, ErrNotAnEmployee
	}

	emp, err := u.employees.GetByUserID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			u.metrics.ObserveFill(metrics.OutcomeRejected)
			log.Info("fill rejected: no employee profile", zap.String("user_id", account.ID.String()))
			return job.Job{}, ErrNotAnEmployee
		}
		u.metrics.ObserveFill(metrics.OutcomeError)
		return job.Job{}, fmt.Errorf("load employee profile: %w", err)
	}
	log = log.With(zap.String("employee_id", emp.ID.String()))

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			u.metrics.ObserveFill(metrics.OutcomeNotFound)
			return job.Job{}, ErrJobNotFound
		}
		u.metrics.ObserveFill(metrics.OutcomeError)
		return job.Job{}, fmt.Errorf("load job: %w", err)
	}
	if !j.IsOpen() {
		u.metrics.ObserveFill(metrics.OutcomeAlreadyFilled)
		log.Info("fill rejected: job already filled")
		return job.Job{}, ErrAlreadyFilled
	}

	at := u.now().UTC()
	ok, err := u.jobs.SetFilledIfOpen(ctx, jobID, emp.ID, at)
	if err != nil {
		u.metrics.ObserveFill(metrics.OutcomeError)
		log.Error("fill failed", zap.Error(err))
		return job.Job{}, fmt.Errorf("fill job: %w", err)
	}
	if !ok {
		u.metrics.ObserveFill(metrics.OutcomeAlreadyFilled)
		log.Info("fill lost race")
		return job.Job{}, ErrAlreadyFilled
	}

	j.FilledBy = &emp.ID
	j.FilledAt = &at
	u.metrics.ObserveFill(metrics.OutcomeFilled)
	log.Info("job filled", zap.Time("filled_at", at))

	if u.notifier != nil {
		u.notifier.JobFilled(ctx, job.FilledEvent{
			JobID:      j.ID,
			EmployerID: j.EmployerID,
			EmployeeID: emp.ID,
			FilledAt:   at,
		})
	}
	if u.reports != nil {
		if err := u.reports.Delete(ctx, DashboardCacheKey); err != nil {
			log.Warn("dashboard cache invalidation failed", zap.Error(err))
		}
	}

	return j, nil
}
