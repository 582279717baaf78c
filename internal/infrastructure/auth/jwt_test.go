package auth

import (
	"testing"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-unit-tests-only",
		TokenExpiration: expiration,
		Issuer:          "blueearth-test",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	tenantID := uuid.New()
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(tenantID, userID, "gaudenz")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("validates freshly issued token", func(t *testing.T) {
		token, _, err := svc.GenerateToken(tenantID, userID, "gaudenz")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, tenantID.String(), claims.TenantID)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "gaudenz", claims.Username)
		assert.Equal(t, "blueearth-test", claims.Issuer)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		token, _, err := expired.GenerateToken(tenantID, userID, "gaudenz")
		require.NoError(t, err)

		_, err = expired.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:          "a-completely-different-secret-key",
			TokenExpiration: 15 * time.Minute,
			Issuer:          "blueearth-test",
		})
		token, _, err := other.GenerateToken(tenantID, userID, "gaudenz")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
