package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/report"
	"skill-match/internal/domain/user"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

// newTestApp mounts register behind the error middleware. A nil account
// leaves the request unauthenticated.
func newTestApp(account *user.Account, register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(zap.NewNop()).Middleware())
	app.Use(func(c fiber.Ctx) error {
		if account != nil {
			c.Locals(middleware.CtxAccountKey, *account)
		}
		return c.Next()
	})
	register(app)
	return app
}

type stubMatching struct {
	owned      []job.Job
	jobs       []matching.ScoredJob
	candidates []matching.ScoredCandidate
	single     matching.ScoredJob
	err        error

	gotFilter usecase.RankFilter
	gotJobID  uuid.UUID
}

func (s *stubMatching) RankJobsForEmployee(_ context.Context, _ user.Account, filter usecase.RankFilter) ([]matching.ScoredJob, error) {
	s.gotFilter = filter
	return s.jobs, s.err
}

func (s *stubMatching) RankCandidatesForJob(_ context.Context, _ user.Account, jobID uuid.UUID) ([]matching.ScoredCandidate, error) {
	s.gotJobID = jobID
	return s.candidates, s.err
}

func (s *stubMatching) ListEmployerJobs(context.Context, user.Account) ([]job.Job, error) {
	return s.owned, s.err
}

func (s *stubMatching) MatchForJob(_ context.Context, _ user.Account, jobID uuid.UUID) (matching.ScoredJob, error) {
	s.gotJobID = jobID
	return s.single, s.err
}

type stubFill struct {
	filled job.Job
	err    error
	calls  int
}

func (s *stubFill) Apply(_ context.Context, jobID uuid.UUID, _ user.Account) (job.Job, error) {
	s.calls++
	if s.err != nil {
		return job.Job{}, s.err
	}
	out := s.filled
	out.ID = jobID
	return out, nil
}

type stubReports struct {
	tiers     report.TierCounts
	months    []report.MonthCount
	dashboard usecase.Dashboard
	window    job.TimeRange
	err       error

	gotWindow job.TimeRange
}

func (s *stubReports) TierSummary(context.Context) (report.TierCounts, error) {
	return s.tiers, s.err
}

func (s *stubReports) MonthlyFills(_ context.Context, window job.TimeRange) ([]report.MonthCount, error) {
	s.gotWindow = window
	if s.err != nil {
		return nil, s.err
	}
	if window.From.IsZero() || window.To.IsZero() {
		return nil, usecase.ErrInvalidInput
	}
	return s.months, nil
}

func (s *stubReports) Dashboard(context.Context) (usecase.Dashboard, error) {
	return s.dashboard, s.err
}

func (s *stubReports) DefaultWindow() job.TimeRange {
	return s.window
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

var errBoom = errors.New("boom")
