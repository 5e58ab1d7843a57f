package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealth map[string]string

func (s stubHealth) Health(context.Context) map[string]string { return s }

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[HealthResponse](t, w)
	assert.Equal(t, "OK", resp.Status)
	assert.NotEmpty(t, resp.Message)
	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
	assert.Nil(t, resp.Database)
}

func TestHealth_ReportsDatabase(t *testing.T) {
	r := chi.NewRouter()
	NewHealthHandler(stubHealth{"status": "down"}).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "down", decodeBody[HealthResponse](t, w).Database["status"])
}
