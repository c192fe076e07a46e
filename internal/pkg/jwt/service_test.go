package jwt

import (
	"testing"
	"time"

	"skill-match/internal/domain/user"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("test-secret", time.Minute)
	acc := user.Account{ID: uuid.New(), Email: "boss@example.com", Role: user.RoleEmployer}

	token, err := svc.GenerateAccessToken(acc)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, acc, claims.Account())
	assert.Equal(t, acc.ID.String(), claims.Subject)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("test-secret", time.Minute)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateAccessToken(user.Account{ID: uuid.New(), Role: user.RoleEmployee})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_Invalid(t *testing.T) {
	svc := NewHMACService("test-secret", time.Minute)
	other := NewHMACService("other-secret", time.Minute)

	token, err := other.GenerateAccessToken(user.Account{ID: uuid.New(), Role: user.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.GenerateAccessToken(user.Account{ID: uuid.New(), Role: "guest"})
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("", time.Minute).GenerateAccessToken(user.Account{ID: uuid.New(), Role: user.RoleAdmin})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RejectsUnknownRole(t *testing.T) {
	svc := NewHMACService("test-secret", time.Minute)
	now := time.Now()
	forged := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID:    uuid.New(),
		Role:      "superuser",
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Minute)),
		},
	})
	token, err := forged.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
