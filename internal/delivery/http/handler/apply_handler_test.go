package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/user"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyHandler_Apply(t *testing.T) {
	jobID := uuid.New()
	empID := uuid.New()
	at := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		account   *user.Account
		target    string
		fill      *stubFill
		wantCode  int
		wantCalls int
	}{
		{
			name:      "hired",
			account:   employeeAccount(),
			target:    "/jobs/" + jobID.String() + "/apply",
			fill:      &stubFill{filled: job.Job{Title: "Cook", FilledBy: &empID, FilledAt: &at}},
			wantCode:  fiber.StatusOK,
			wantCalls: 1,
		},
		{
			name:     "unauthenticated",
			target:   "/jobs/" + jobID.String() + "/apply",
			fill:     &stubFill{},
			wantCode: fiber.StatusUnauthorized,
		},
		{
			name:     "malformed job id",
			account:  employeeAccount(),
			target:   "/jobs/123/apply",
			fill:     &stubFill{},
			wantCode: fiber.StatusBadRequest,
		},
		{
			name:      "employer cannot apply",
			account:   &user.Account{ID: uuid.New(), Role: user.RoleEmployer},
			target:    "/jobs/" + jobID.String() + "/apply",
			fill:      &stubFill{err: usecase.ErrNotAnEmployee},
			wantCode:  fiber.StatusForbidden,
			wantCalls: 1,
		},
		{
			name:      "already filled",
			account:   employeeAccount(),
			target:    "/jobs/" + jobID.String() + "/apply",
			fill:      &stubFill{err: usecase.ErrAlreadyFilled},
			wantCode:  fiber.StatusConflict,
			wantCalls: 1,
		},
		{
			name:      "unknown job",
			account:   employeeAccount(),
			target:    "/jobs/" + jobID.String() + "/apply",
			fill:      &stubFill{err: usecase.ErrJobNotFound},
			wantCode:  fiber.StatusNotFound,
			wantCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(tc.account, NewApplyHandler(tc.fill).RegisterRoutes)

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, tc.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantCode, resp.StatusCode)
			assert.Equal(t, tc.wantCalls, tc.fill.calls)

			env := decodeEnvelope(t, resp)
			if tc.wantCode != fiber.StatusOK {
				return
			}
			var out dto.JobResponse
			require.NoError(t, json.Unmarshal(env.Data, &out))
			assert.Equal(t, jobID, out.ID)
			require.NotNil(t, out.FilledBy)
			assert.Equal(t, empID, *out.FilledBy)
			require.NotNil(t, out.FilledAt)
			assert.True(t, at.Equal(*out.FilledAt))
		})
	}
}

func TestApplyHandler_ConflictMessage(t *testing.T) {
	app := newTestApp(employeeAccount(), NewApplyHandler(&stubFill{err: usecase.ErrAlreadyFilled}).RegisterRoutes)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/jobs/"+uuid.NewString()+"/apply", nil))
	require.NoError(t, err)
	assert.Equal(t, "Job has already been filled", decodeEnvelope(t, resp).Message)
}
