package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidID is returned when a path or body identifier is malformed.
	ErrInvalidID = errors.New("invalid ID")
	// ErrProjectNotFound is returned when a project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrTaskNotFound is returned when a task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotCreator is returned when the caller does not own the project.
	ErrNotCreator = errors.New("action not allowed")
	// ErrForbidden is returned when the caller lacks access to a task's project.
	ErrForbidden = errors.New("you do not have permission to perform this action")
	// ErrCreatorAsCollaborator is returned when the owner is added as a collaborator.
	ErrCreatorAsCollaborator = errors.New("the project creator cannot be a collaborator")
	// ErrAlreadyCollaborator is returned when the user already collaborates on the project.
	ErrAlreadyCollaborator = errors.New("the user is already a collaborator")
	// ErrUserAlreadyExists is returned when registering a taken email.
	ErrUserAlreadyExists = errors.New("user already registered")
	// ErrAccountNotConfirmed is returned on login before confirmation.
	ErrAccountNotConfirmed = errors.New("your account has not been confirmed")
	// ErrWrongPassword is returned on login with a bad password.
	ErrWrongPassword = errors.New("incorrect password")
	// ErrInvalidToken is returned for an unknown confirmation or reset token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidConfirmation is returned for an unknown account confirmation token.
	ErrInvalidConfirmation = errors.New("invalid confirmation token")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or revoked.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUnauthenticated is returned when no valid bearer credential is present.
	ErrUnauthenticated = errors.New("invalid or missing token")
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// MessageResponse is the body of requests that succeed without a document.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Msg: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are
// matched with errors.Is; anything unknown becomes a 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrCreatorAsCollaborator),
		errors.Is(err, ErrAlreadyCollaborator),
		errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, rootMessage(err))
	case errors.Is(err, ErrNotCreator),
		errors.Is(err, ErrInvalidRefreshToken),
		errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, rootMessage(err))
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrAccountNotConfirmed),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrInvalidConfirmation):
		return NewHTTPError(http.StatusForbidden, rootMessage(err))
	case errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusNotFound, rootMessage(err))
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

// rootMessage strips wrapping context so clients only see the sentinel text.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		ErrInvalidID, ErrCreatorAsCollaborator, ErrAlreadyCollaborator, ErrUserAlreadyExists,
		ErrNotCreator, ErrInvalidRefreshToken, ErrUnauthenticated, ErrForbidden,
		ErrAccountNotConfirmed, ErrWrongPassword, ErrInvalidConfirmation, ErrProjectNotFound, ErrTaskNotFound,
		ErrUserNotFound, ErrInvalidToken,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
