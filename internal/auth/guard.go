package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "uptask/internal/errors"
	"uptask/internal/model"
)

const (
	claimsContextKey = "claims"
	userContextKey   = "usuario"
)

// UserLoader resolves the account behind a validated token.
type UserLoader interface {
	GetUser(ctx context.Context, id string) (*model.UserSummary, error)
}

// Guard authenticates bearer tokens and attaches the caller to the request.
type Guard struct {
	jwt    *JWTService
	tokens TokenStoreInterface
	users  UserLoader
}

// NewGuard creates the authentication guard.
func NewGuard(jwtService *JWTService, tokens TokenStoreInterface, users UserLoader) *Guard {
	return &Guard{jwt: jwtService, tokens: tokens, users: users}
}

// Middleware validates the Authorization header, rejects revoked tokens and
// loads the caller. Every failure is a 401.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := g.jwt.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			revoked, err := g.tokens.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
			if err != nil || revoked {
				return nil, apperrors.ErrUnauthenticated
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(g.loadUser(next))
	}
}

func (g *Guard) loadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsContextKey).(*Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		}
		user, err := g.users.GetUser(c.Request().Context(), claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

// CurrentUser returns the authenticated caller.
func CurrentUser(c echo.Context) (*model.UserSummary, bool) {
	user, ok := c.Get(userContextKey).(*model.UserSummary)
	return user, ok && user != nil
}

// CurrentClaims returns the claims of the access token used for the request.
func CurrentClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok
}

// SetCurrentUser attaches user to the request as if the guard had run.
func SetCurrentUser(c echo.Context, user *model.UserSummary) {
	c.Set(userContextKey, user)
}

// NewOneTimeToken returns a random token for confirmation and password
// reset links.
func NewOneTimeToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
