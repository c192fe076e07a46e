package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"skill-match/internal/domain/employee"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/user"
	"skill-match/internal/metrics"
	"skill-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RankFilter narrows a job ranking. MinScore and Limit apply after ranking.
type RankFilter struct {
	Skill    string
	Location string
	MinScore float64
	Limit    int
}

type MatchingUsecase interface {
	RankJobsForEmployee(ctx context.Context, account user.Account, filter RankFilter) ([]matching.ScoredJob, error)
	RankCandidatesForJob(ctx context.Context, account user.Account, jobID uuid.UUID) ([]matching.ScoredCandidate, error)
	MatchForJob(ctx context.Context, account user.Account, jobID uuid.UUID) (matching.ScoredJob, error)
	ListEmployerJobs(ctx context.Context, account user.Account) ([]job.Job, error)
}

type Matching struct {
	jobs      repository.JobRepository
	employees repository.EmployeeRepository
	employers repository.EmployerRepository
	cache     ScoreCache
	cacheTTL  time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewMatchingUsecase wires the ranking flows. cache may be nil.
func NewMatchingUsecase(
	jobs repository.JobRepository,
	employees repository.EmployeeRepository,
	employers repository.EmployerRepository,
	cache ScoreCache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	log *zap.Logger,
) *Matching {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matching{
		jobs:      jobs,
		employees: employees,
		employers: employers,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   m,
		logger:    log.With(zap.String("component", "matching")),
	}
}

func (u *Matching) RankJobsForEmployee(ctx context.Context, account user.Account, filter RankFilter) ([]matching.ScoredJob, error) {
	if math.IsNaN(filter.MinScore) || filter.MinScore < 0 || filter.MinScore > 100 || filter.Limit < 0 {
		return nil, ErrInvalidInput
	}
	emp, err := u.employeeFor(ctx, account)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	jobs, err := u.jobs.ListOpenJobs(ctx, repository.JobFilter{
		Skill:    filter.Skill,
		Location: filter.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("list open jobs: %w", err)
	}

	var ranked []matching.ScoredJob
	if u.cache == nil {
		ranked = matching.RankJobs(emp, jobs)
	} else {
		pairs := make([]scorePair, 0, len(jobs))
		for _, j := range jobs {
			pairs = append(pairs, scorePair{emp: emp, job: j})
		}
		results := u.scorePairs(ctx, pairs)

		ranked = make([]matching.ScoredJob, 0, len(jobs))
		for i, j := range jobs {
			ranked = append(ranked, matching.ScoredJob{Job: j, Result: results[i]})
		}
		matching.SortJobs(ranked)
	}

	if filter.MinScore > 0 {
		kept := ranked[:0]
		for _, r := range ranked {
			if r.Result.Score >= filter.MinScore {
				kept = append(kept, r)
			}
		}
		ranked = kept
	}
	if filter.Limit > 0 && len(ranked) > filter.Limit {
		ranked = ranked[:filter.Limit]
	}

	u.metrics.ObserveRanking("jobs", time.Since(started))
	u.logger.Debug("ranked jobs",
		zap.String("employee_id", emp.ID.String()),
		zap.Int("open_jobs", len(jobs)),
		zap.Int("returned", len(ranked)),
	)
	return ranked, nil
}

func (u *Matching) RankCandidatesForJob(ctx context.Context, account user.Account, jobID uuid.UUID) ([]matching.ScoredCandidate, error) {
	if account.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if !account.Role.CanViewCandidates() {
		return nil, ErrForbidden
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if account.Role == user.RoleEmployer {
		owner, err := u.employers.GetByUserID(ctx, account.ID)
		if err != nil {
			if errors.Is(err, repository.ErrEmployerNotFound) {
				return nil, ErrForbidden
			}
			return nil, fmt.Errorf("load employer profile: %w", err)
		}
		if owner.ID != j.EmployerID {
			return nil, ErrForbidden
		}
	}

	started := time.Now()
	emps, err := u.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	var ranked []matching.ScoredCandidate
	if u.cache == nil {
		ranked = matching.RankCandidates(j, emps)
	} else {
		pairs := make([]scorePair, 0, len(emps))
		for _, e := range emps {
			pairs = append(pairs, scorePair{emp: e, job: j})
		}
		results := u.scorePairs(ctx, pairs)

		ranked = make([]matching.ScoredCandidate, 0, len(emps))
		for i, e := range emps {
			ranked = append(ranked, matching.ScoredCandidate{Employee: e, Result: results[i]})
		}
		sort.SliceStable(ranked, func(a, b int) bool {
			return ranked[a].Result.Score > ranked[b].Result.Score
		})
	}

	u.metrics.ObserveRanking("candidates", time.Since(started))
	return ranked, nil
}

func (u *Matching) MatchForJob(ctx context.Context, account user.Account, jobID uuid.UUID) (matching.ScoredJob, error) {
	emp, err := u.employeeFor(ctx, account)
	if err != nil {
		return matching.ScoredJob{}, err
	}
	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return matching.ScoredJob{}, err
	}

	res := u.scorePairs(ctx, []scorePair{{emp: emp, job: j}})
	return matching.ScoredJob{Job: j, Result: res[0]}, nil
}

// ListEmployerJobs returns every job the caller's company posted, open and
// filled, newest first.
func (u *Matching) ListEmployerJobs(ctx context.Context, account user.Account) ([]job.Job, error) {
	if account.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if !account.Role.CanPostJobs() {
		return nil, ErrForbidden
	}
	owner, err := u.employers.GetByUserID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployerNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("load employer profile: %w", err)
	}

	jobs, err := u.jobs.ListByEmployer(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list employer jobs: %w", err)
	}
	return jobs, nil
}

func (u *Matching) employeeFor(ctx context.Context, account user.Account) (employee.Profile, error) {
	if account.ID == uuid.Nil {
		return employee.Profile{}, ErrUnauthorized
	}
	if !account.Role.CanApply() {
		return employee.Profile{}, ErrNotAnEmployee
	}
	emp, err := u.employees.GetByUserID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return employee.Profile{}, ErrNotAnEmployee
		}
		return employee.Profile{}, fmt.Errorf("load employee profile: %w", err)
	}
	return emp, nil
}

func (u *Matching) loadJob(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	if jobID == uuid.Nil {
		return job.Job{}, ErrJobNotFound
	}
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("load job: %w", err)
	}
	return j, nil
}

type scorePair struct {
	emp employee.Profile
	job job.Job
}

// scorePairs returns one result per pair, in order. Cached results are used
// when present; everything else is computed and written back.
func (u *Matching) scorePairs(ctx context.Context, pairs []scorePair) []matching.Result {
	out := make([]matching.Result, len(pairs))
	if u.cache == nil {
		for i, p := range pairs {
			out[i] = matching.Score(p.emp, p.job)
		}
		return out
	}

	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = ScoreCacheKey(p.emp.ID, p.emp.Version, p.job.ID, p.job.Version)
	}

	cached, err := u.cache.GetResults(ctx, keys)
	if err != nil {
		u.logger.Warn("score cache read failed", zap.Error(err))
		cached = nil
	}

	fresh := make(map[string]matching.Result)
	for i, p := range pairs {
		if res, ok := cached[keys[i]]; ok {
			out[i] = res
			continue
		}
		res := matching.Score(p.emp, p.job)
		out[i] = res
		fresh[keys[i]] = res
	}
	u.metrics.ObserveCache(len(pairs)-len(fresh), len(fresh))

	if len(fresh) > 0 {
		if err := u.cache.SetResults(ctx, fresh, u.cacheTTL); err != nil {
			u.logger.Warn("score cache write failed", zap.Error(err))
		}
	}
	return out
}
