package transport

import (
	"errors"
	"net/http"
	"strconv"

	"shophub/internal/middleware"
	"shophub/internal/repository"
	"shophub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var errInvalidID = errors.New("invalid id")

// MessageResponse is the body of successful write operations
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// errorStatuses maps domain sentinels to the status and message clients see
var errorStatuses = []struct {
	err     error
	status  int
	message string
}{
	{repository.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{repository.ErrCartItemNotFound, http.StatusNotFound, "Cart item not found"},
	{repository.ErrWishlistItemNotFound, http.StatusNotFound, "Wishlist item not found"},
	{repository.ErrInsufficientStock, http.StatusBadRequest, "Not enough stock"},
	{repository.ErrWishlistItemExists, http.StatusBadRequest, "Product already in wishlist"},
	{repository.ErrReviewExists, http.StatusBadRequest, "You have already reviewed this product"},
	{service.ErrInvalidRating, http.StatusBadRequest, "Rating must be between 1 and 5"},
	{service.ErrInvalidQuantity, http.StatusBadRequest, "Invalid quantity"},
	{service.ErrSearchCriteriaRequired, http.StatusBadRequest, "Search query or category required"},
	{errInvalidID, http.StatusBadRequest, "Invalid id"},
}

// respondWithServiceError writes the mapped status for known errors and logs
// anything else as a 500
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, operation string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			logger.Debug(operation+" rejected", zap.Error(err))
			middleware.RespondWithError(w, e.status, e.message)
			return
		}
	}

	logger.Error(operation+" failed", zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}

// parseID reads a positive integer URL parameter
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// requireUserID returns the authenticated user's ID. Routes using it sit
// behind the session middleware, so a miss is answered with 401.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return userID, ok
}
