package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"uptask/internal/config"
	apperrors "uptask/internal/errors"
	"uptask/internal/handler"
	"uptask/internal/metrics"
)

func rejectAll(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
	}
}

func newTestServer() *echo.Echo {
	e := echo.New()
	Register(e, config.Default(), zap.NewNop(), metrics.New(), rejectAll, Handlers{
		Users:    handler.NewUserHandler(nil, nil),
		Projects: handler.NewProjectHandler(nil),
		Tasks:    handler.NewTaskHandler(nil),
	})
	e.GET("/boom", func(c echo.Context) error { panic("boom") })
	e.GET("/plain", func(c echo.Context) error { return errors.New("db down") })
	e.GET("/domain", func(c echo.Context) error { return apperrors.ErrProjectNotFound })
	return e
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	rec := serve(newTestServer(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRouter_ErrorBodiesAlwaysCarryMsg(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound, `{"msg":"Not Found"}`},
		{"guarded projects", http.MethodGet, "/api/proyectos", http.StatusUnauthorized, `{"msg":"invalid or missing token"}`},
		{"guarded tasks", http.MethodPost, "/api/tareas/estado/64b7f0c2a1e3d4c5b6a79820", http.StatusUnauthorized, `{"msg":"invalid or missing token"}`},
		{"guarded profile", http.MethodGet, "/api/usuarios/perfil", http.StatusUnauthorized, `{"msg":"invalid or missing token"}`},
		{"panic", http.MethodGet, "/boom", http.StatusInternalServerError, `{"msg":"internal server error"}`},
		{"plain error", http.MethodGet, "/plain", http.StatusInternalServerError, `{"msg":"internal server error"}`},
		{"domain error", http.MethodGet, "/domain", http.StatusNotFound, `{"msg":"project not found"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestServer(), tt.method, tt.path, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestRouter_ValidationMessagesUseJSONNames(t *testing.T) {
	e := newTestServer()

	rec := serve(e, http.MethodPost, "/api/usuarios", `{"email":"ana@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"msg":"nombre is required"}`, rec.Body.String())

	rec = serve(e, http.MethodPost, "/api/usuarios/login", `{"email":"nope","password":"x"}`)
	assert.JSONEq(t, `{"msg":"email must be a valid email"}`, rec.Body.String())

	rec = serve(e, http.MethodPost, "/api/usuarios/olvide-password/tok", `{"password":"123"}`)
	assert.JSONEq(t, `{"msg":"password must be at least 6 characters"}`, rec.Body.String())
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	e := newTestServer()
	serve(e, http.MethodGet, "/healthz", "")

	rec := serve(e, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `uptask_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestRouter_CORS(t *testing.T) {
	e := newTestServer()
	cfg := config.Default()

	req := httptest.NewRequest(http.MethodOptions, "/api/proyectos", nil)
	req.Header.Set(echo.HeaderOrigin, cfg.FrontendURL)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, cfg.FrontendURL, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	req = httptest.NewRequest(http.MethodOptions, "/api/proyectos", nil)
	req.Header.Set(echo.HeaderOrigin, "http://evil.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
