package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"imagify/internal/errors"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken(42, "user@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWTService_ValidateIsIdempotent(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateToken(7, "a@b.com")
	assert.NoError(t, err)

	// Repeated validation of the same unexpired token must resolve to the
	// same identifier every time.
	for i := 0; i < 3; i++ {
		claims, err := svc.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	claims := &Claims{
		UserID: 1,
		Email:  "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-TokenLifetime)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, errors.ErrTokenExpired)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", func() string {
			other := NewJWTService("other-secret")
			token, _ := other.GenerateToken(1, "a@b.com")
			return token
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, errors.ErrInvalidToken)
		})
	}
}
