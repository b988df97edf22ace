package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugh/orgroster/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour, "orgroster")

	t.Run("generates valid token", func(t *testing.T) {
		token, err := jwtService.GenerateToken(7, 3)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, uint(3), claims.OrganisationID)
		assert.Equal(t, "orgroster", claims.Issuer)
	})

	t.Run("expires after 24 hours", func(t *testing.T) {
		token, err := jwtService.GenerateToken(7, 3)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("each token has a distinct id", func(t *testing.T) {
		t1, err := jwtService.GenerateToken(7, 3)
		require.NoError(t, err)
		t2, err := jwtService.GenerateToken(7, 3)
		require.NoError(t, err)
		assert.NotEqual(t, t1, t2)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Run("rejects expired token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", -time.Hour, "orgroster")

		token, err := jwtService.GenerateToken(1, 1)
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(token)
		assert.Equal(t, auth.ErrExpiredToken, err)
	})

	t.Run("rejects tampered signature", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour, "orgroster")

		token, err := jwtService.GenerateToken(1, 1)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		_, err = jwtService.ValidateToken(tampered)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		s1 := auth.NewJWTService("secret-1", 24*time.Hour, "orgroster")
		s2 := auth.NewJWTService("secret-2", 24*time.Hour, "orgroster")

		token, err := s1.GenerateToken(1, 1)
		require.NoError(t, err)

		_, err = s2.ValidateToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token from another issuer", func(t *testing.T) {
		s1 := auth.NewJWTService("test-secret", 24*time.Hour, "someone-else")
		s2 := auth.NewJWTService("test-secret", 24*time.Hour, "orgroster")

		token, err := s1.GenerateToken(1, 1)
		require.NoError(t, err)

		_, err = s2.ValidateToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects unsigned token", func(t *testing.T) {
		claims := auth.Claims{
			UserID:         1,
			OrganisationID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				Issuer:    "orgroster",
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		jwtService := auth.NewJWTService("test-secret", 24*time.Hour, "orgroster")
		_, err = jwtService.ValidateToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token without organisation", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour, "orgroster")

		token, err := jwtService.GenerateToken(1, 0)
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects malformed and empty tokens", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour, "orgroster")

		_, err := jwtService.ValidateToken("not-a-valid-jwt")
		assert.Equal(t, auth.ErrInvalidToken, err)

		_, err = jwtService.ValidateToken("")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})
}
