package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRoute(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/proyectos/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/proyectos/abc", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/api/proyectos/:id", "200")))
}

func TestEmailCounters(t *testing.T) {
	m := New()
	m.EmailSent("confirmation")
	m.EmailFailed("password_reset")
	m.EmailFailed("password_reset")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.emailsTotal.WithLabelValues("confirmation", "sent")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.emailsTotal.WithLabelValues("password_reset", "failed")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.EmailSent("confirmation") })
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.EmailSent("confirmation")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "uptask_emails_total"))
}
