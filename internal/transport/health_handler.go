package transport

import (
	"context"
	"net/http"
	"time"

	"recrent-shop/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// HealthChecker reports the state of a dependency
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Database  map[string]string `json:"database,omitempty"`
}

// HealthHandler serves /api/health
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.Health)
}

// Health always answers 200 while the process serves requests; database
// details are informational.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "OK",
		Message:   "RECRENT SHOP API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		resp.Database = h.db.Health(ctx)
	}

	middleware.RespondWithJSON(w, http.StatusOK, resp)
}
