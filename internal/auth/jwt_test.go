package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-secret-key-for-testing-purposes", 24*time.Hour)
}

func TestNewJWTService(t *testing.T) {
	service := newTestJWTService()
	assert.NotNil(t, service)
	assert.Equal(t, 24*time.Hour, service.TokenExpiry())
}

func TestJWTService_GenerateToken_Success(t *testing.T) {
	service := newTestJWTService()

	token, expiresAt, err := service.GenerateToken("user-123", "Test User", "test@example.com", "customer")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(25*time.Hour)))
}

func TestJWTService_ValidateToken_Valid(t *testing.T) {
	service := newTestJWTService()

	token, _, err := service.GenerateToken("user-456", "Admin", "admin@example.com", "admin")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, "user-456", claims.UserID)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "user-456", claims.Subject)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret", 1*time.Millisecond)

	token, _, err := service.GenerateToken("user-123", "Test User", "test@example.com", "customer")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	claims, err := service.ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateToken_Invalid(t *testing.T) {
	service := newTestJWTService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-token"},
		{"truncated token", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ4In0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	service := newTestJWTService()
	other := NewJWTService("a-completely-different-secret-key", 24*time.Hour)

	token, _, err := other.GenerateToken("user-123", "Test User", "test@example.com", "customer")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateToken_WrongSigningMethod(t *testing.T) {
	service := newTestJWTService()

	// Token signed with the "none" method must be rejected.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-123"})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := service.ValidateToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
