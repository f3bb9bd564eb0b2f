package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"uptask/internal/config"
	apperrors "uptask/internal/errors"
	"uptask/internal/handler"
	"uptask/internal/logging"
	"uptask/internal/metrics"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Users    *handler.UserHandler
	Projects *handler.ProjectHandler
	Tasks    *handler.TaskHandler
}

// Register wires middleware, operational endpoints and the API routes.
// guard must authenticate the caller and attach it to the context.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	guard echo.MiddlewareFunc,
	h Handlers,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(m.Middleware())
	e.Use(logging.Middleware(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	usuarios := api.Group("/usuarios")
	usuarios.POST("", h.Users.Register)
	usuarios.POST("/login", h.Users.Login)
	usuarios.GET("/confirmar/:token", h.Users.Confirm)
	usuarios.POST("/olvide-password", h.Users.ForgotPassword)
	usuarios.GET("/olvide-password/:token", h.Users.CheckResetToken)
	usuarios.POST("/olvide-password/:token", h.Users.NewPassword)
	usuarios.POST("/refresh", h.Users.Refresh)
	usuarios.POST("/logout", h.Users.Logout, guard)
	usuarios.GET("/perfil", h.Users.Profile, guard)

	proyectos := api.Group("/proyectos", guard)
	proyectos.GET("", h.Projects.ListProjects)
	proyectos.POST("", h.Projects.CreateProject)
	proyectos.POST("/colaboradores", h.Projects.FindCollaborator)
	proyectos.POST("/colaboradores/:id", h.Projects.AddCollaborator)
	proyectos.DELETE("/colaboradores/:id", h.Projects.RemoveCollaborator)
	proyectos.GET("/:id", h.Projects.GetProject)
	proyectos.PUT("/:id", h.Projects.EditProject)
	proyectos.DELETE("/:id", h.Projects.DeleteProject)

	tareas := api.Group("/tareas", guard)
	tareas.POST("", h.Tasks.CreateTask)
	tareas.GET("/:id", h.Tasks.GetTask)
	tareas.PUT("/:id", h.Tasks.UpdateTask)
	tareas.DELETE("/:id", h.Tasks.DeleteTask)
	tareas.POST("/estado/:id", h.Tasks.ToggleTaskState)
}

// ErrorHandler writes every failure as {"msg": ...}. Framework errors keep
// their status; anything else goes through errors.MapErrorToHTTP.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var body apperrors.ErrorResponse

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch msg := he.Message.(type) {
		case apperrors.ErrorResponse:
			body = msg
		case string:
			body.Msg = msg
		case error:
			body.Msg = msg.Error()
		default:
			body.Msg = http.StatusText(status)
		}
	} else {
		httpErr := apperrors.MapErrorToHTTP(err)
		status, body = httpErr.StatusCode, httpErr.ToErrorResponse()
	}

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request failed", zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
