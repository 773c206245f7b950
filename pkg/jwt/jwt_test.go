package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestService() *Service {
	return NewService("access-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)
}

func TestNewService(t *testing.T) {
	service := newTestService()

	assert.NotNil(t, service)
	assert.Equal(t, []byte("access-secret"), service.accessSecret)
	assert.Equal(t, []byte("refresh-secret"), service.refreshSecret)
}

func TestGenerateAccessToken(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken("user-123", "alice@example.com", "alice", "Alice Liddell")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateAccessToken(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken("user-123", "alice@example.com", "alice", "Alice Liddell")
	assert.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Alice Liddell", claims.FullName)
}

func TestValidateRefreshToken(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateRefreshToken("user-123")
	assert.NoError(t, err)

	claims, err := service.ValidateRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateAccessToken("invalid-token")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = service.ValidateRefreshToken("invalid-token")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service1 := NewService("secret-1", "secret-1", 15*time.Minute, time.Hour)
	service2 := NewService("secret-2", "secret-2", 15*time.Minute, time.Hour)

	token, err := service1.GenerateAccessToken("user-123", "a@x.com", "alice", "Alice")
	assert.NoError(t, err)

	_, err = service2.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_CrossKind(t *testing.T) {
	// An access token must not validate as a refresh token: different secrets.
	service := newTestService()

	accessToken, err := service.GenerateAccessToken("user-123", "a@x.com", "alice", "Alice")
	assert.NoError(t, err)

	_, err = service.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	service := NewService("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, err := service.GenerateAccessToken("user-123", "a@x.com", "alice", "Alice")
	assert.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_EmptyToken(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateAccessToken("")
	assert.Error(t, err)
}

func TestAccessToken_ExpirySet(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken("user-123", "a@x.com", "alice", "Alice")
	assert.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims.ExpiresAt)
	assert.True(t, time.Now().Before(claims.ExpiresAt.Time))
}

func TestRefreshToken_OutlivesAccessToken(t *testing.T) {
	service := newTestService()

	accessToken, err := service.GenerateAccessToken("user-123", "a@x.com", "alice", "Alice")
	assert.NoError(t, err)
	refreshToken, err := service.GenerateRefreshToken("user-123")
	assert.NoError(t, err)

	accessClaims, err := service.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	refreshClaims, err := service.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)

	assert.True(t, refreshClaims.ExpiresAt.Time.After(accessClaims.ExpiresAt.Time))
}
