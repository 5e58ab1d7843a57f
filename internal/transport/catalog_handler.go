package transport

import (
	"net/http"

	"recrent-shop/internal/catalog"
	"recrent-shop/internal/domain"
	"recrent-shop/internal/middleware"
	"recrent-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogResponse is a filtered page of the catalog
type CatalogResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// CatalogHandler serves the buyer-facing filtered catalog
type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/", h.Browse)
		r.Get("/facets", h.Facets)
	})
}

// Browse applies the query string filter, e.g.
// /api/catalog?category=clothing&size=L:clothing&sortBy=price-asc
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	filter, err := catalog.ParseQuery(r.URL.Query())
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.catalogService.Browse(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to browse catalog", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to retrieve catalog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CatalogResponse{Products: products, Total: len(products)})
}

// Facets lists the filter values available in the catalog
func (h *CatalogHandler) Facets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.catalogService.Facets(r.Context())
	if err != nil {
		h.logger.Error("Failed to build catalog facets", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to retrieve catalog facets")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, facets)
}
