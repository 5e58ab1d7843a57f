package transport

import (
	"errors"
	"net/http"

	"recrent-shop/internal/cart"
	"recrent-shop/internal/domain"
	"recrent-shop/internal/middleware"
	"recrent-shop/internal/repository"
	"recrent-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddCartItemRequest adds a product configuration to the cart
type AddCartItemRequest struct {
	ProductID     int64  `json:"productId" validate:"required,gt=0"`
	Quantity      int    `json:"quantity" validate:"gte=0,lte=99"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
	SelectedType  string `json:"selectedType"`
}

// UpdateCartItemRequest sets the quantity of a cart line
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=99"`
}

// CartHandler serves the session cart
type CartHandler struct {
	carts          *cart.Manager
	productService service.ProductService
	logger         *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cart.Manager, productService service.ProductService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:          carts,
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{lineID}", h.UpdateItem)
		r.Delete("/items/{lineID}", h.RemoveItem)
		r.Post("/checkout", h.Checkout)
	})
}

// openCart resolves the cart session from the request, issuing a new one when
// the header is absent. The session id is echoed back in the response header.
func (h *CartHandler) openCart(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	sessionID := r.Header.Get(middleware.CartSessionHeader)
	if sessionID == "" {
		sessionID = h.carts.NewSessionID()
	} else if !cart.ValidSessionID(sessionID) {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart session")
		return nil, false
	}

	w.Header().Set(middleware.CartSessionHeader, sessionID)
	return h.carts.Open(r.Context(), sessionID), true
}

// GetCart returns the cart contents and totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.openCart(w, r)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, store.Summarize())
}

// AddItem snapshots the product into a cart line and merges it into the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.openCart(w, r)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	product, err := h.productService.Get(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to load product for cart", zap.Error(err), zap.Int64("product_id", req.ProductID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item to cart")
		return
	}

	selectedType := req.SelectedType
	if product.Category == domain.CategoryClothing && selectedType == "" {
		selectedType = product.ClothingType
	}

	store.AddItem(r.Context(), domain.NewCartItem(product, req.Quantity, req.SelectedSize, req.SelectedColor, selectedType))
	middleware.RespondWithJSON(w, http.StatusOK, store.Summarize())
}

// UpdateItem sets a line's quantity; zero or less removes the line
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.openCart(w, r)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	if !store.UpdateQuantity(r.Context(), chi.URLParam(r, "lineID"), *req.Quantity) {
		middleware.RespondWithError(w, http.StatusNotFound, "cart item not found")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, store.Summarize())
}

// RemoveItem deletes a line. Removing an unknown line is not an error.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.openCart(w, r)
	if !ok {
		return
	}

	store.RemoveItem(r.Context(), chi.URLParam(r, "lineID"))
	middleware.RespondWithJSON(w, http.StatusOK, store.Summarize())
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.openCart(w, r)
	if !ok {
		return
	}

	store.Clear(r.Context())
	middleware.RespondWithJSON(w, http.StatusOK, store.Summarize())
}

// Checkout places the cart as an order. An empty cart is refused with 409.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	store, ok := h.openCart(w, r)
	if !ok {
		return
	}

	order, err := store.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			middleware.RespondWithError(w, http.StatusConflict, "cart is empty")
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to checkout")
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_number", order.Number),
		zap.Int("total_items", order.TotalItems),
		zap.Int64("total_price", order.TotalPrice),
	)
	middleware.RespondWithJSON(w, http.StatusOK, order)
}
