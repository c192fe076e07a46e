package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/user"
	"skill-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCmd_MintsValidToken(t *testing.T) {
	t.Setenv("SKILLMATCH_JWT_SECRET", "cli-secret")
	t.Setenv("SKILLMATCH_JWT_ACCESS_EXPIRES_IN", "5m")

	id := uuid.New()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--user-id", id.String(), "--role", "Employer", "--email", "boss@example.com"})
	require.NoError(t, cmd.Execute())

	claims, err := jwt.NewHMACService("cli-secret", 5*time.Minute).ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, user.Account{ID: id, Email: "boss@example.com", Role: user.RoleEmployer}, claims.Account())
}

func TestTokenCmd_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		secret string
		args   []string
	}{
		{name: "missing secret", args: []string{"token", "--user-id", uuid.NewString()}},
		{name: "bad user id", secret: "s", args: []string{"token", "--user-id", "42"}},
		{name: "bad role", secret: "s", args: []string{"token", "--user-id", uuid.NewString(), "--role", "guest"}},
		{name: "user id required", secret: "s", args: []string{"token"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SKILLMATCH_JWT_SECRET", tc.secret)

			cmd := NewRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tc.args)
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestParseWindow(t *testing.T) {
	def := job.TimeRange{
		From: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	got, err := parseWindow(def, "", "")
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got, err = parseWindow(def, "2026-01-01T07:00:00+07:00", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got.From)
	assert.Equal(t, def.To, got.To)

	_, err = parseWindow(def, "", "yesterday")
	assert.Error(t, err)
}
