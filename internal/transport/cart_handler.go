package transport

import (
	"net/http"

	"shophub/internal/middleware"
	"shophub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddToCartRequest represents the add-to-cart payload
type AddToCartRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gte=1"`
}

// UpdateCartRequest represents the quantity update payload. Zero removes the line.
type UpdateCartRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// CartHandler handles HTTP requests for the user's cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListCart)
		r.Post("/", h.AddToCart)
		r.Patch("/{id}", h.UpdateQuantity)
		r.Delete("/{id}", h.RemoveFromCart)
	})
}

// ListCart returns the user's cart lines joined with their products
func (h *CartHandler) ListCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.cartService.ListCart(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "List cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// AddToCart creates a cart line (201) or merges into the existing one (200)
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))
		middleware.RespondWithRequestError(w, err)
		return
	}

	item, created, err := h.cartService.AddToCart(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Add to cart")
		return
	}

	if created {
		middleware.RespondWithJSON(w, http.StatusCreated, MessageResponse{Message: "Item added to cart", ID: item.ID})
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Cart updated", ID: item.ID})
}

// UpdateQuantity sets a cart line's quantity
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	itemID, err := parseID(r, "id")
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Update cart")
		return
	}

	var req UpdateCartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update cart validation failed", zap.Error(err))
		middleware.RespondWithRequestError(w, err)
		return
	}

	if err := h.cartService.UpdateQuantity(r.Context(), userID, itemID, *req.Quantity); err != nil {
		respondWithServiceError(w, h.logger, err, "Update cart")
		return
	}

	if *req.Quantity == 0 {
		middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Item removed from cart"})
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Cart updated"})
}

// RemoveFromCart deletes a cart line
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	itemID, err := parseID(r, "id")
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Remove from cart")
		return
	}

	if err := h.cartService.RemoveFromCart(r.Context(), userID, itemID); err != nil {
		respondWithServiceError(w, h.logger, err, "Remove from cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Item removed from cart"})
}
