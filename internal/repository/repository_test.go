package repository

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"skill-match/internal/database"
	"skill-match/internal/domain/employee"
	"skill-match/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("scan arity mismatch")
	}
	for i, d := range dest {
		v := reflect.ValueOf(r.values[i])
		target := reflect.ValueOf(d).Elem()
		if !v.IsValid() {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(v)
	}
	return nil
}

type fakeRows struct {
	rows []fakeRow
	i    int
}

func (r *fakeRows) Close()                 {}
func (r *fakeRows) Err() error             { return nil }
func (r *fakeRows) Next() bool             { r.i++; return r.i <= len(r.rows) }
func (r *fakeRows) Scan(dest ...any) error { return r.rows[r.i-1].Scan(dest...) }

type fakeDB struct {
	row      fakeRow
	rows     []fakeRow
	affected int64
	err      error

	lastQuery string
	lastArgs  []any
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Exec(_ context.Context, q string, args ...any) (int64, error) {
	f.lastQuery, f.lastArgs = q, args
	return f.affected, f.err
}

func (f *fakeDB) Query(_ context.Context, q string, args ...any) (database.Rows, error) {
	f.lastQuery, f.lastArgs = q, args
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRows{rows: f.rows}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, q string, args ...any) database.Row {
	f.lastQuery, f.lastArgs = q, args
	return f.row
}

func (f *fakeDB) Begin(context.Context) (database.Tx, error) { return nil, errors.New("not supported") }

type stubEmployees struct {
	byID map[uuid.UUID]employee.Profile
}

func (s stubEmployees) GetByID(_ context.Context, id uuid.UUID) (employee.Profile, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return employee.Profile{}, ErrEmployeeNotFound
}
func (s stubEmployees) GetByUserID(context.Context, uuid.UUID) (employee.Profile, error) {
	return employee.Profile{}, ErrEmployeeNotFound
}
func (s stubEmployees) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]employee.Profile, error) {
	out := map[uuid.UUID]employee.Profile{}
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
func (s stubEmployees) List(context.Context, EmployeeFilter) ([]employee.Profile, error) {
	return nil, nil
}

func jobRow(id uuid.UUID, filledBy *uuid.UUID, filledAt *time.Time, skills ...string) fakeRow {
	return fakeRow{values: []any{
		id, uuid.New(), "Cook", "Jakarta", "", 2,
		filledBy, filledAt, time.Now(), int64(42), skills,
	}}
}

func TestJobRepository_GetByID(t *testing.T) {
	id := uuid.New()
	db := &fakeDB{row: jobRow(id, nil, nil, "Cooking", "Cleaning")}
	repo := NewPostgresJobRepository(db, stubEmployees{})

	j, err := repo.GetByID(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, id, j.ID)
	assert.True(t, j.IsOpen())
	assert.Equal(t, []string{"Cleaning", "Cooking"}, j.RequiredSkills.Sorted())
	assert.Equal(t, int64(42), j.Version)
	assert.Equal(t, []any{id}, db.lastArgs)
}

func TestJobRepository_GetByID_NotFound(t *testing.T) {
	for _, scanErr := range []error{pgx.ErrNoRows, sql.ErrNoRows} {
		repo := NewPostgresJobRepository(&fakeDB{row: fakeRow{err: scanErr}}, stubEmployees{})
		_, err := repo.GetByID(t.Context(), uuid.New())
		assert.ErrorIs(t, err, ErrJobNotFound)
	}

	boom := errors.New("connection reset")
	repo := NewPostgresJobRepository(&fakeDB{row: fakeRow{err: boom}}, stubEmployees{})
	_, err := repo.GetByID(t.Context(), uuid.New())
	assert.ErrorIs(t, err, boom)
}

func TestJobRepository_SetFilledIfOpen(t *testing.T) {
	jobID, empID := uuid.New(), uuid.New()
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	db := &fakeDB{affected: 1}
	repo := NewPostgresJobRepository(db, stubEmployees{})

	ok, err := repo.SetFilledIfOpen(t.Context(), jobID, empID, at)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, db.lastQuery, "filled_by IS NULL")
	assert.Equal(t, []any{jobID, empID, at.UTC()}, db.lastArgs)

	db.affected = 0
	ok, err = repo.SetFilledIfOpen(t.Context(), jobID, empID, at)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJobRepository_ListFilledJobs_ResolvesEmployees(t *testing.T) {
	known := employee.Profile{ID: uuid.New(), Name: "Siti"}
	missing := uuid.New()
	at := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	db := &fakeDB{rows: []fakeRow{
		jobRow(uuid.New(), &known.ID, &at, "Cooking"),
		jobRow(uuid.New(), &missing, &at),
		jobRow(uuid.New(), &known.ID, &at),
	}}
	repo := NewPostgresJobRepository(db, stubEmployees{byID: map[uuid.UUID]employee.Profile{known.ID: known}})

	window := &job.TimeRange{From: at.AddDate(0, -1, 0), To: at}
	got, err := repo.ListFilledJobs(t.Context(), window)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, f := range got {
		assert.Equal(t, known.ID, f.Employee.ID)
		assert.True(t, f.Job.IsFilled())
	}
	assert.Equal(t, window.From, db.lastArgs[0])

	got, err = repo.ListFilledJobs(t.Context(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestJobRepository_ListOpenJobs_FilterArgs(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresJobRepository(db, stubEmployees{})

	got, err := repo.ListOpenJobs(t.Context(), JobFilter{Skill: " cook ", Location: "Bandung"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, []any{"Bandung", "cook"}, db.lastArgs)
	assert.NotContains(t, db.lastQuery, "LIMIT")
}

func TestEmployeeRepository_List_Unbounded(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresEmployeeRepository(db)

	_, err := repo.List(t.Context(), EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, []any{"", ""}, db.lastArgs)
	assert.NotContains(t, db.lastQuery, "LIMIT")
}

func TestEmployeeRepository_GetByIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	db := &fakeDB{rows: []fakeRow{
		{values: []any{a, uuid.New(), "Ani", "Jakarta", 3, int64(1), []string{"Driving"}}},
		{values: []any{b, uuid.New(), "Budi", "Depok", 0, int64(2), []string{}}},
	}}
	repo := NewPostgresEmployeeRepository(db)

	got, err := repo.GetByIDs(t.Context(), []uuid.UUID{a, b})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[a].Skills.Has("Driving"))
	assert.Equal(t, []any{[]string{a.String(), b.String()}}, db.lastArgs)

	empty, err := repo.GetByIDs(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEmployeeRepository_NotFound(t *testing.T) {
	repo := NewPostgresEmployeeRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})
	_, err := repo.GetByUserID(t.Context(), uuid.New())
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployerRepository_GetByUserID(t *testing.T) {
	id, userID := uuid.New(), uuid.New()
	repo := NewPostgresEmployerRepository(&fakeDB{row: fakeRow{values: []any{id, userID, "PT Maju", "hr@maju.id", "Surabaya"}}})

	p, err := repo.GetByUserID(t.Context(), userID)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "PT Maju", p.CompanyName)

	repo = NewPostgresEmployerRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})
	_, err = repo.GetByUserID(t.Context(), userID)
	assert.ErrorIs(t, err, ErrEmployerNotFound)
}

func TestStatsRepository_Overview(t *testing.T) {
	repo := NewPostgresStatsRepository(&fakeDB{row: fakeRow{values: []any{12, 3, 20, 7}}})

	o, err := repo.Overview(t.Context())
	require.NoError(t, err)
	assert.Equal(t, Overview{Employees: 12, Employers: 3, Jobs: 20, FilledJobs: 7}, o)
}
