package jwt

import (
	"testing"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewJWTService(testSecret, "1h", "24h")
	require.NoError(t, err)
	return svc
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService(t)

	token, exp, err := svc.GenerateAccessToken("user-1", "EMP001", user.RoleEmployee)
	require.NoError(t, err)
	assert.NotZero(t, exp)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "EMP001", claims["login_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestParseRefreshToken(t *testing.T) {
	svc := newTestService(t)

	first, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	userID, err := svc.ParseRefreshToken(first)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParseRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService(t)

	access, _, err := svc.GenerateAccessToken("user-1", "EMP001", user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParseRefreshToken_RejectsForeignSignature(t *testing.T) {
	other, err := NewJWTService("another-secret", "1h", "24h")
	require.NoError(t, err)
	token, _, err := other.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = newTestService(t).ParseRefreshToken(token)
	assert.Error(t, err)
}

func TestParseRefreshToken_RejectsExpired(t *testing.T) {
	svc, err := NewJWTService(testSecret, "1h", "-1h")
	require.NoError(t, err)
	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(token)
	assert.Error(t, err)
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService(testSecret, "soon", "24h")
	assert.Error(t, err)
}
