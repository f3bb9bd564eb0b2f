// Package handler holds the Echo handlers of the UpTask API. Handlers
// validate identifiers and bodies, call one service method and translate
// its error through errors.MapErrorToHTTP, so every path answers exactly
// once with either a document or a {msg} body.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"uptask/internal/auth"
	apperrors "uptask/internal/errors"
	"uptask/internal/model"
)

const dateLayout = "2006-01-02"

// serviceError converts a service error into an echo error with a {msg} body.
func serviceError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Msg: msg})
}

// decode reads the request body into req without validating it.
func decode(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := decode(c, req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

// pathID returns the named path parameter if it is a well-formed id.
func pathID(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if !model.IsValidID(id) {
		return "", serviceError(apperrors.ErrInvalidID)
	}
	return id, nil
}

// caller returns the authenticated user attached by the guard.
func caller(c echo.Context) (*model.UserSummary, error) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return nil, serviceError(apperrors.ErrUnauthenticated)
	}
	return user, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339. An empty value yields nil.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, badRequest("invalid fechaEntrega, expected YYYY-MM-DD")
}

func message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, apperrors.MessageResponse{Msg: msg})
}
