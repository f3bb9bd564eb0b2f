package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid id", ErrInvalidID, http.StatusBadRequest, "invalid ID"},
		{"wrapped invalid id", fmt.Errorf("get project: %w", ErrInvalidID), http.StatusBadRequest, "invalid ID"},
		{"creator as collaborator", ErrCreatorAsCollaborator, http.StatusBadRequest, ErrCreatorAsCollaborator.Error()},
		{"duplicate collaborator", ErrAlreadyCollaborator, http.StatusBadRequest, ErrAlreadyCollaborator.Error()},
		{"not creator", ErrNotCreator, http.StatusUnauthorized, "action not allowed"},
		{"forbidden", ErrForbidden, http.StatusForbidden, ErrForbidden.Error()},
		{"unconfirmed", ErrAccountNotConfirmed, http.StatusForbidden, ErrAccountNotConfirmed.Error()},
		{"project not found", ErrProjectNotFound, http.StatusNotFound, "project not found"},
		{"user not found", fmt.Errorf("lookup: %w", ErrUserNotFound), http.StatusNotFound, "user not found"},
		{"invalid confirmation", ErrInvalidConfirmation, http.StatusForbidden, "invalid confirmation token"},
		{"invalid token", ErrInvalidToken, http.StatusNotFound, "invalid token"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.Equal(t, ErrorResponse{Msg: tt.wantMsg}, httpErr.ToErrorResponse())
		})
	}
}
