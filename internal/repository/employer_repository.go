package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-match/internal/database"
	"skill-match/internal/domain/employer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=./employer_repository.go -destination=./mocks/employer_repository.mock.go -package=repomocks EmployerRepository
type EmployerRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (employer.Profile, error)
}

type PostgresEmployerRepository struct {
	db database.DB
}

func NewPostgresEmployerRepository(db database.DB) *PostgresEmployerRepository {
	return &PostgresEmployerRepository{db: db}
}

func (r *PostgresEmployerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (employer.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, company_name, contact_email, location
		 FROM employer_profiles
		 WHERE user_id = $1`,
		userID,
	)

	var p employer.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.ContactEmail, &p.Location); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return employer.Profile{}, ErrEmployerNotFound
		}
		return employer.Profile{}, err
	}
	return p, nil
}
