package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uptask/internal/cache"
	"uptask/internal/model"
)

type memoryTokenStore struct {
	refresh     map[string]string
	blacklisted map[string]bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{refresh: map[string]string{}, blacklisted: map[string]bool{}}
}

func (s *memoryTokenStore) StoreRefreshToken(_ context.Context, tokenID, userID string, _ time.Duration) error {
	s.refresh[tokenID] = userID
	return nil
}

func (s *memoryTokenStore) GetRefreshToken(_ context.Context, tokenID string) (string, error) {
	id, ok := s.refresh[tokenID]
	if !ok {
		return "", ErrRefreshTokenNotFound
	}
	return id, nil
}

func (s *memoryTokenStore) DeleteRefreshToken(_ context.Context, tokenID string) error {
	delete(s.refresh, tokenID)
	return nil
}

func (s *memoryTokenStore) BlacklistAccessToken(_ context.Context, tokenID string, _ time.Duration) error {
	s.blacklisted[tokenID] = true
	return nil
}

func (s *memoryTokenStore) IsAccessTokenBlacklisted(_ context.Context, tokenID string) (bool, error) {
	return s.blacklisted[tokenID], nil
}

type stubUsers map[string]*model.UserSummary

func (s stubUsers) GetUser(_ context.Context, id string) (*model.UserSummary, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

const guardUserID = "64b7f0c2a1e3d4c5b6a79801"

func newGuardedServer(t *testing.T) (*echo.Echo, *JWTService, *memoryTokenStore) {
	t.Helper()
	jwtService := NewJWTService("secret", time.Hour, time.Hour)
	store := newMemoryTokenStore()
	users := stubUsers{guardUserID: {ID: guardUserID, Nombre: "Ana", Email: "ana@example.com"}}
	guard := NewGuard(jwtService, store, users)

	e := echo.New()
	e.GET("/private", func(c echo.Context) error {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, user)
	}, guard.Middleware())
	return e, jwtService, store
}

func doGuarded(e *echo.Echo, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGuard_AttachesCaller(t *testing.T) {
	e, jwtService, _ := newGuardedServer(t)
	token, err := jwtService.GenerateAccessToken(guardUserID)
	require.NoError(t, err)

	rec := doGuarded(e, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ana@example.com"`)
}

func TestGuard_Rejects(t *testing.T) {
	e, jwtService, store := newGuardedServer(t)

	unknown, err := jwtService.GenerateAccessToken("64b7f0c2a1e3d4c5b6a79802")
	require.NoError(t, err)
	revoked, err := jwtService.GenerateAccessToken(guardUserID)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(revoked)
	require.NoError(t, err)
	store.blacklisted[claims.ID] = true

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"malformed token", "Bearer abc"},
		{"unknown user", "Bearer " + unknown},
		{"revoked token", "Bearer " + revoked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGuarded(e, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestTokenStore_UnavailableRedis(t *testing.T) {
	store := NewTokenStore(cache.New("127.0.0.1:1", "", 0))
	ctx := context.Background()

	_, err := store.GetRefreshToken(ctx, "missing")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)

	revoked, err := store.IsAccessTokenBlacklisted(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, revoked)
}
