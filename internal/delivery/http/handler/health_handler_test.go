package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	testCases := []struct {
		name     string
		db       Pinger
		cache    Pinger
		wantCode int
		wantData string
	}{
		{name: "all up", db: stubPinger{}, cache: stubPinger{}, wantCode: fiber.StatusOK, wantData: `{"database":"up","cache":"up"}`},
		{name: "no cache", db: stubPinger{}, wantCode: fiber.StatusOK, wantData: `{"database":"up","cache":"disabled"}`},
		{name: "cache down", db: stubPinger{}, cache: stubPinger{err: errBoom}, wantCode: fiber.StatusOK, wantData: `{"database":"up","cache":"down"}`},
		{name: "db down", db: stubPinger{err: errBoom}, cache: stubPinger{}, wantCode: fiber.StatusServiceUnavailable, wantData: `{"database":"down","cache":"up"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(nil, NewHealthHandler(tc.db, tc.cache).RegisterRoutes)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantCode, resp.StatusCode)
			assert.JSONEq(t, tc.wantData, string(decodeEnvelope(t, resp).Data))
		})
	}
}
