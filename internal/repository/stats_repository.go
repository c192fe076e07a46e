package repository

import (
	"context"

	"skill-match/internal/database"
)

type Overview struct {
	Employees  int `json:"employees"`
	Employers  int `json:"employers"`
	Jobs       int `json:"jobs"`
	FilledJobs int `json:"filled_jobs"`
}

//go:generate mockgen -source=./stats_repository.go -destination=./mocks/stats_repository.mock.go -package=repomocks StatsRepository
type StatsRepository interface {
	Overview(ctx context.Context) (Overview, error)
}

type PostgresStatsRepository struct {
	db database.DB
}

func NewPostgresStatsRepository(db database.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) Overview(ctx context.Context) (Overview, error) {
	row := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(1) FROM employee_profiles),
			(SELECT COUNT(1) FROM employer_profiles),
			(SELECT COUNT(1) FROM jobs),
			(SELECT COUNT(1) FROM jobs WHERE filled_by IS NOT NULL)`,
	)

	var o Overview
	if err := row.Scan(&o.Employees, &o.Employers, &o.Jobs, &o.FilledJobs); err != nil {
		return Overview{}, err
	}
	return o, nil
}
