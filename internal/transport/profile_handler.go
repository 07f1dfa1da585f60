package transport

import (
	"net/http"

	"shophub/internal/domain"
	"shophub/internal/middleware"
	"shophub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileHandler handles HTTP requests for the user's profile
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// RegisterRoutes registers all profile routes
func (h *ProfileHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/profile", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetProfile)
		r.Post("/", h.SaveProfile)
	})
}

// GetProfile returns the saved profile or {}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Get profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, profile)
}

// SaveProfile creates the profile or updates only the fields present in the body
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var update domain.ProfileUpdate
	if err := middleware.DecodeAndValidate(r, &update); err != nil {
		h.logger.Debug("Profile validation failed", zap.Error(err))
		middleware.RespondWithRequestError(w, err)
		return
	}

	if err := h.profileService.SaveProfile(r.Context(), userID, update); err != nil {
		respondWithServiceError(w, h.logger, err, "Save profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Profile updated successfully"})
}
