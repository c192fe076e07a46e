package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"skill-match/internal/database"
	"skill-match/internal/domain/employee"
	"skill-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EmployeeFilter struct {
	Skill    string
	Location string
}

//go:generate mockgen -source=./employee_repository.go -destination=./mocks/employee_repository.mock.go -package=repomocks EmployeeRepository
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (employee.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (employee.Profile, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]employee.Profile, error)
	List(ctx context.Context, filter EmployeeFilter) ([]employee.Profile, error)
}

type PostgresEmployeeRepository struct {
	db database.DB
}

func NewPostgresEmployeeRepository(db database.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

const employeeSelect = `SELECT e.id, e.user_id, e.name, e.location, e.experience_years,
		(EXTRACT(EPOCH FROM e.updated_at) * 1000000)::BIGINT AS version,
		COALESCE(array_agg(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}') AS skills
	FROM employee_profiles e
	LEFT JOIN employee_skills es ON es.employee_id = e.id
	LEFT JOIN skills s ON s.id = es.skill_id`

func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (employee.Profile, error) {
	return r.getOne(ctx, employeeSelect+`
	WHERE e.id = $1
	GROUP BY e.id`, id)
}

func (r *PostgresEmployeeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (employee.Profile, error) {
	return r.getOne(ctx, employeeSelect+`
	WHERE e.user_id = $1
	GROUP BY e.id`, userID)
}

func (r *PostgresEmployeeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]employee.Profile, error) {
	out := make(map[uuid.UUID]employee.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	list, err := r.list(ctx, employeeSelect+`
	WHERE e.id = ANY($1::uuid[])
	GROUP BY e.id`, uuidStrings(ids))
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *PostgresEmployeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]employee.Profile, error) {
	return r.list(ctx, employeeSelect+`
	WHERE ($1 = '' OR e.location ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR EXISTS (
		SELECT 1 FROM employee_skills fx
		JOIN skills fs ON fs.id = fx.skill_id
		WHERE fx.employee_id = e.id AND fs.name ILIKE '%' || $2 || '%'))
	GROUP BY e.id
	ORDER BY e.created_at ASC, e.id ASC`,
		strings.TrimSpace(filter.Location),
		strings.TrimSpace(filter.Skill),
	)
}

func (r *PostgresEmployeeRepository) getOne(ctx context.Context, query string, args ...any) (employee.Profile, error) {
	p, err := scanEmployee(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, ErrEmployeeNotFound
		}
		return employee.Profile{}, err
	}
	return p, nil
}

func (r *PostgresEmployeeRepository) list(ctx context.Context, query string, args ...any) ([]employee.Profile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]employee.Profile, 0)
	for rows.Next() {
		p, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanEmployee(row database.Row) (employee.Profile, error) {
	var (
		p      employee.Profile
		skills []string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Location, &p.ExperienceYears, &p.Version, &skills); err != nil {
		return employee.Profile{}, err
	}
	p.Skills = skill.NewSet(skills...)
	return p, nil
}
