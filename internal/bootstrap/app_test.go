package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Routes(t *testing.T) {
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("LOG_LEVEL", "error")

	app := NewApp()
	require.NoError(t, app.Initialize(context.Background()))
	t.Cleanup(app.Store.Close)

	routes := map[string]bool{}
	for _, r := range app.Echo.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /",
		"POST /api/sheets",
		"GET /api/sheets/current",
		"GET /api/sheets/export",
		"GET /api/sheets/preview",
		"GET /api/uploads",
	} {
		assert.True(t, routes[want], want)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sheets/current", nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, rec.Body.String(), `"success":true`)
}
