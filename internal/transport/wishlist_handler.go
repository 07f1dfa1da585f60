package transport

import (
	"net/http"

	"shophub/internal/middleware"
	"shophub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddToWishlistRequest represents the add-to-wishlist payload
type AddToWishlistRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// WishlistHandler handles HTTP requests for the user's wishlist
type WishlistHandler struct {
	wishlistService service.WishlistService
	logger          *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// RegisterRoutes registers all wishlist routes
func (h *WishlistHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListWishlist)
		r.Post("/", h.AddToWishlist)
		r.Delete("/{id}", h.RemoveFromWishlist)
	})
}

func (h *WishlistHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.wishlistService.ListWishlist(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "List wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddToWishlistRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to wishlist validation failed", zap.Error(err))
		middleware.RespondWithRequestError(w, err)
		return
	}

	id, err := h.wishlistService.AddToWishlist(r.Context(), userID, req.ProductID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Add to wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, MessageResponse{Message: "Added to wishlist", ID: id})
}

func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	itemID, err := parseID(r, "id")
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Remove from wishlist")
		return
	}

	if err := h.wishlistService.RemoveFromWishlist(r.Context(), userID, itemID); err != nil {
		respondWithServiceError(w, h.logger, err, "Remove from wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Removed from wishlist"})
}
