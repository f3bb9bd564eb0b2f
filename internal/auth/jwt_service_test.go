package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken("64b7f0c2a1e3d4c5b6a79801")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1e3d4c5b6a79801", claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.RemainingTTL().Seconds(), 5)
}

func TestJWTService_RefreshTokenIDMatchesClaims(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour)

	tokenID, token, err := svc.GenerateRefreshToken("64b7f0c2a1e3d4c5b6a79801")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
}

func TestJWTService_ValidateTokenRejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour)
	other := NewJWTService("other-secret", time.Hour, time.Hour)
	expired := NewJWTService("secret", -time.Minute, time.Hour)

	foreign, err := other.GenerateAccessToken("64b7f0c2a1e3d4c5b6a79801")
	require.NoError(t, err)
	stale, err := expired.GenerateAccessToken("64b7f0c2a1e3d4c5b6a79801")
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	anonymous, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"unsigned", none},
		{"missing claims", anonymous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestNewOneTimeToken(t *testing.T) {
	a, b := NewOneTimeToken(), NewOneTimeToken()
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}
