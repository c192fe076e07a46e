package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"skill-match/internal/database"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/skill"

	"github.com/ecodeclub/ekit/slice"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobFilter narrows open-job listings. Empty fields match everything; Skill
// and Location are case-insensitive substring matches. Listings are never
// truncated, since ranking has to see every open job.
type JobFilter struct {
	Skill    string
	Location string
}

//go:generate mockgen -source=./job_repository.go -destination=./mocks/job_repository.mock.go -package=repomocks JobRepository
type JobRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ListOpenJobs(ctx context.Context, filter JobFilter) ([]job.Job, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Job, error)
	ListAll(ctx context.Context) ([]job.Job, error)
	// ListFilledJobs returns filled jobs with their filler resolved. A nil
	// window returns every filled job.
	ListFilledJobs(ctx context.Context, window *job.TimeRange) ([]job.Filled, error)
	// SetFilledIfOpen marks the job filled only if it is still open. It
	// reports false when another writer got there first.
	SetFilledIfOpen(ctx context.Context, jobID, employeeID uuid.UUID, at time.Time) (bool, error)
}

type PostgresJobRepository struct {
	db        database.DB
	employees EmployeeRepository
}

func NewPostgresJobRepository(db database.DB, employees EmployeeRepository) *PostgresJobRepository {
	return &PostgresJobRepository{db: db, employees: employees}
}

const jobSelect = `SELECT j.id, j.employer_id, j.title, j.location, j.salary, j.experience_required,
		j.filled_by, j.filled_at, j.created_at,
		(EXTRACT(EPOCH FROM j.updated_at) * 1000000)::BIGINT AS version,
		COALESCE(array_agg(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}') AS skills
	FROM jobs j
	LEFT JOIN job_required_skills jrs ON jrs.job_id = j.id
	LEFT JOIN skills s ON s.id = jrs.skill_id`

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, jobSelect+`
	WHERE j.id = $1
	GROUP BY j.id`, id)

	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListOpenJobs(ctx context.Context, filter JobFilter) ([]job.Job, error) {
	return r.list(ctx, jobSelect+`
	WHERE j.filled_by IS NULL
	  AND ($1 = '' OR j.location ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR EXISTS (
		SELECT 1 FROM job_required_skills fx
		JOIN skills fs ON fs.id = fx.skill_id
		WHERE fx.job_id = j.id AND fs.name ILIKE '%' || $2 || '%'))
	GROUP BY j.id
	ORDER BY j.created_at DESC, j.id ASC`,
		strings.TrimSpace(filter.Location),
		strings.TrimSpace(filter.Skill),
	)
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Job, error) {
	return r.list(ctx, jobSelect+`
	WHERE j.employer_id = $1
	GROUP BY j.id
	ORDER BY j.created_at DESC, j.id ASC`, employerID)
}

func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	return r.list(ctx, jobSelect+`
	GROUP BY j.id
	ORDER BY j.created_at DESC, j.id ASC`)
}

func (r *PostgresJobRepository) ListFilledJobs(ctx context.Context, window *job.TimeRange) ([]job.Filled, error) {
	var from, to any
	if window != nil {
		from, to = window.From.UTC(), window.To.UTC()
	}

	jobs, err := r.list(ctx, jobSelect+`
	WHERE j.filled_by IS NOT NULL
	  AND ($1::timestamptz IS NULL OR j.filled_at >= $1::timestamptz)
	  AND ($2::timestamptz IS NULL OR j.filled_at <= $2::timestamptz)
	GROUP BY j.id
	ORDER BY j.filled_at ASC, j.id ASC`, from, to)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return []job.Filled{}, nil
	}

	ids := make([]uuid.UUID, 0, len(jobs))
	seen := make(map[uuid.UUID]struct{}, len(jobs))
	for _, j := range jobs {
		if _, ok := seen[*j.FilledBy]; ok {
			continue
		}
		seen[*j.FilledBy] = struct{}{}
		ids = append(ids, *j.FilledBy)
	}

	emps, err := r.employees.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]job.Filled, 0, len(jobs))
	for _, j := range jobs {
		e, ok := emps[*j.FilledBy]
		if !ok {
			continue
		}
		out = append(out, job.Filled{Job: j, Employee: e})
	}
	return out, nil
}

func (r *PostgresJobRepository) SetFilledIfOpen(ctx context.Context, jobID, employeeID uuid.UUID, at time.Time) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET filled_by = $2, filled_at = $3, updated_at = GREATEST($3, updated_at + interval '1 microsecond')
		 WHERE id = $1 AND filled_by IS NULL`,
		jobID, employeeID, at.UTC(),
	)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *PostgresJobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j        job.Job
		filledBy *uuid.UUID
		filledAt *time.Time
		skills   []string
	)
	if err := row.Scan(
		&j.ID,
		&j.EmployerID,
		&j.Title,
		&j.Location,
		&j.Salary,
		&j.ExperienceRequired,
		&filledBy,
		&filledAt,
		&j.CreatedAt,
		&j.Version,
		&skills,
	); err != nil {
		return job.Job{}, err
	}

	// Both columns are set together by a table constraint.
	if filledBy != nil && filledAt != nil {
		at := filledAt.UTC()
		j.FilledBy = filledBy
		j.FilledAt = &at
	}
	j.RequiredSkills = skill.NewSet(skills...)
	return j, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	return slice.Map(ids, func(_ int, id uuid.UUID) string { return id.String() })
}
