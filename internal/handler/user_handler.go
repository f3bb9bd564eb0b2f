package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"uptask/internal/auth"
	apperrors "uptask/internal/errors"
	"uptask/internal/service"
)

// UserHandler handles account and session endpoints.
type UserHandler struct {
	userService service.UserService
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, authService service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EmailRequest carries the email of a password reset.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewPasswordRequest carries the replacement password.
type NewPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutRequest optionally names the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse is the authenticated user with its tokens.
type LoginResponse struct {
	ID           string `json:"_id"`
	Nombre       string `json:"nombre"`
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse carries a fresh access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags usuarios
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /usuarios [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.userService.Register(c.Request().Context(), service.RegisterInput{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return serviceError(err)
	}
	return message(c, "user created, check your email to confirm your account")
}

// Login godoc
// @Summary Login user
// @Tags usuarios
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /usuarios/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		ID:           result.User.ID,
		Nombre:       result.User.Nombre,
		Email:        result.User.Email,
		Token:        result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// Confirm godoc
// @Summary Confirm an account
// @Tags usuarios
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} errors.MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /usuarios/confirmar/{token} [get]
func (h *UserHandler) Confirm(c echo.Context) error {
	if err := h.userService.Confirm(c.Request().Context(), c.Param("token")); err != nil {
		return serviceError(err)
	}
	return message(c, "account confirmed")
}

// ForgotPassword godoc
// @Summary Request a password reset email
// @Tags usuarios
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Account email"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/olvide-password [post]
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req EmailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.userService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return serviceError(err)
	}
	return message(c, "we have sent an email with the instructions")
}

// CheckResetToken godoc
// @Summary Check a password reset token
// @Tags usuarios
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} errors.MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/olvide-password/{token} [get]
func (h *UserHandler) CheckResetToken(c echo.Context) error {
	if err := h.userService.CheckResetToken(c.Request().Context(), c.Param("token")); err != nil {
		return serviceError(err)
	}
	return message(c, "valid token")
}

// NewPassword godoc
// @Summary Set a new password with a reset token
// @Tags usuarios
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body NewPasswordRequest true "New password"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/olvide-password/{token} [post]
func (h *UserHandler) NewPassword(c echo.Context) error {
	var req NewPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.userService.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return serviceError(err)
	}
	return message(c, "password updated")
}

// Refresh godoc
// @Summary Refresh access token
// @Tags usuarios
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /usuarios/refresh [post]
func (h *UserHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Logout godoc
// @Summary Logout user
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} errors.MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /usuarios/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return serviceError(apperrors.ErrUnauthenticated)
	}

	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	if err := h.authService.Logout(c.Request().Context(), claims, req.RefreshToken); err != nil {
		return serviceError(err)
	}
	return message(c, "logged out")
}

// Profile godoc
// @Summary Get the caller's profile
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserSummary
// @Failure 401 {object} errors.ErrorResponse
// @Router /usuarios/perfil [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
