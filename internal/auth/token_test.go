package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connecta_backend/internal/config"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTL = 24 * 7
	config.AppConfig = cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("user-123", "freelancer")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "freelancer", claims.UserType)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestParseTokenGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", "client")
	require.NoError(t, err)

	original := config.AppConfig.JWT.Secret
	config.AppConfig.JWT.Secret = "other-secret"
	defer func() { config.AppConfig.JWT.Secret = original }()

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	original := config.AppConfig.JWT.TTL
	config.AppConfig.JWT.TTL = -1
	token, err := GenerateToken("user-123", "client")
	config.AppConfig.JWT.TTL = original
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestGenerateRefreshToken(t *testing.T) {
	t.Parallel()

	token, expiry := GenerateRefreshToken()
	assert.Len(t, token, 36)
	assert.True(t, expiry.After(time.Now().Add(6*24*time.Hour)))
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Password1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1!", hash)
	assert.True(t, CheckPasswordHash("Password1!", hash))
	assert.False(t, CheckPasswordHash("password1!", hash))
}
