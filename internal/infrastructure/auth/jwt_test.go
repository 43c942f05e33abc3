package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-access-secret-for-unit-tests",
		RefreshSecret:          "test-refresh-secret-for-unit-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "nasiya-test",
		MaxRefreshCount:        3,
	}
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	sellerID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{SellerID: sellerID, Login: "akmal"})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	sellerID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{SellerID: sellerID, Login: "akmal"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, sellerID.String(), claims.SellerID)
		assert.Equal(t, "akmal", claims.Login)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)

		parsed, err := claims.GetSellerUUID()
		require.NoError(t, err)
		assert.Equal(t, sellerID, parsed)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)

		assert.Error(t, err)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "different-secret-entirely-here",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "nasiya-test",
			MaxRefreshCount:        3,
		})
		otherPair, err := other.GenerateTokenPair(GenerateTokenInput{SellerID: sellerID, Login: "akmal"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(otherPair.AccessToken)
		assert.Error(t, err)
	})
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpiration = -time.Minute
	svc := NewJWTService(cfg)

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{SellerID: uuid.New(), Login: "akmal"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	sellerID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{SellerID: sellerID, Login: "akmal"})
	require.NoError(t, err)

	t.Run("issues new pair", func(t *testing.T) {
		newPair, err := svc.RefreshTokenPair(pair.RefreshToken, "akmal")

		require.NoError(t, err)
		assert.NotEmpty(t, newPair.AccessToken)

		claims, err := svc.ValidateAccessToken(newPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, sellerID.String(), claims.SellerID)

		refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("access token cannot be used for refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, "akmal")

		assert.Error(t, err)
	})

	t.Run("refresh count limit enforced", func(t *testing.T) {
		current := pair.RefreshToken
		var refreshErr error
		for i := 0; i < 5; i++ {
			var next *TokenPair
			next, refreshErr = svc.RefreshTokenPair(current, "akmal")
			if refreshErr != nil {
				break
			}
			current = next.RefreshToken
		}

		assert.ErrorIs(t, refreshErr, ErrMaxRefreshExceeded)
	})
}

func TestClaims_TTLHelpers(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{SellerID: uuid.New(), Login: "akmal"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	assert.False(t, claims.GetIssuedAtTime().IsZero())
	assert.True(t, claims.GetExpiresAtTime().After(time.Now()))
	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
}
