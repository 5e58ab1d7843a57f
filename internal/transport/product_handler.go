package transport

import (
	"errors"
	"net/http"

	"recrent-shop/internal/middleware"
	"recrent-shop/internal/repository"
	"recrent-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductResponse is returned after a product is created
type CreateProductResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// SuccessResponse acknowledges a write
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. Writes require an admin token.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public routes
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireAdmin(h.logger))
			r.Post("/", h.CreateProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})
	})
}

// ListProducts returns the whole catalog in id order
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to retrieve products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns a single product
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, err, id, "failed to retrieve product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct adds a product to the catalog
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req service.ProductInput
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		respondDecodeError(w, err)
		return
	}

	product, err := h.productService.Create(r.Context(), req)
	if err != nil {
		if respondServiceValidation(w, err) {
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	admin, _ := middleware.GetUsername(r.Context())
	h.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("title", product.Title),
		zap.String("admin", admin),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, CreateProductResponse{Success: true, ID: product.ID})
}

// UpdateProduct replaces the attributes of a product
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req service.ProductInput
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		respondDecodeError(w, err)
		return
	}

	if _, err := h.productService.Update(r.Context(), id, req); err != nil {
		if respondServiceValidation(w, err) {
			return
		}
		h.respondLookupError(w, err, id, "failed to update product")
		return
	}

	admin, _ := middleware.GetUsername(r.Context())
	h.logger.Info("Product updated", zap.Int64("product_id", id), zap.String("admin", admin))
	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// DeleteProduct removes a product from the catalog
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, err, id, "failed to delete product")
		return
	}

	admin, _ := middleware.GetUsername(r.Context())
	h.logger.Info("Product deleted", zap.Int64("product_id", id), zap.String("admin", admin))
	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *ProductHandler) respondLookupError(w http.ResponseWriter, err error, id int64, message string) {
	if errors.Is(err, repository.ErrProductNotFound) {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	h.logger.Error(message, zap.Error(err), zap.Int64("product_id", id))
	middleware.RespondWithError(w, http.StatusInternalServerError, message)
}
