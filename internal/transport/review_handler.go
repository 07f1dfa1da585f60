package transport

import (
	"net/http"

	"shophub/internal/middleware"
	"shophub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddReviewRequest represents the review submission payload. Rating bounds
// are enforced by the review service.
type AddReviewRequest struct {
	Rating  int     `json:"rating"`
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Comment *string `json:"comment" validate:"omitempty,max=5000"`
}

// ReviewHandler handles HTTP requests for product reviews
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// RegisterRoutes registers all review routes. Reading is anonymous.
func (h *ReviewHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/products/{id}/reviews", h.ListReviews)
	r.Get("/api/products/{id}/reviews/summary", h.ReviewSummary)
	r.With(authMiddleware).Post("/api/products/{id}/reviews", h.AddReview)
}

// ListReviews returns a product's reviews, newest first
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r, "id")
	if err != nil {
		respondWithServiceError(w, h.logger, err, "List reviews")
		return
	}

	reviews, err := h.reviewService.ListReviews(r.Context(), productID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "List reviews")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}

// ReviewSummary returns the average rating and review count
func (h *ReviewHandler) ReviewSummary(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r, "id")
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Review summary")
		return
	}

	summary, err := h.reviewService.ReviewSummary(r.Context(), productID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Review summary")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, summary)
}

// AddReview stores the authenticated user's review of a product
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	productID, err := parseID(r, "id")
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Add review")
		return
	}

	var req AddReviewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Review validation failed", zap.Error(err))
		middleware.RespondWithRequestError(w, err)
		return
	}

	review, err := h.reviewService.AddReview(r.Context(), userID, productID, req.Rating, req.Title, req.Comment)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Add review")
		return
	}

	h.logger.Info("Review added",
		zap.String("user_id", userID),
		zap.Int64("product_id", productID),
		zap.Int64("review_id", review.ID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, MessageResponse{Message: "Review added successfully", ID: review.ID})
}
