package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shophub/internal/identity"
	"shophub/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionRequest represents the code exchange payload
type SessionRequest struct {
	Code string `json:"code"`
}

// RedirectURLResponse carries the OAuth consent URL
type RedirectURLResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

// SuccessResponse is returned by the session endpoints
type SuccessResponse struct {
	Success bool `json:"success"`
}

// SessionCookie describes the cookie that carries the session token
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
}

func (c SessionCookie) build(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// AuthHandler handles login and logout against the identity provider
type AuthHandler struct {
	provider identity.Provider
	cookie   SessionCookie
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(provider identity.Provider, cookie SessionCookie, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		cookie:   cookie,
		logger:   logger,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/oauth/google/redirect_url", h.RedirectURL)
	r.Post("/api/sessions", h.CreateSession)
	r.Get("/api/logout", h.Logout)
	r.With(authMiddleware).Get("/api/users/me", h.Me)
}

// RedirectURL returns the Google consent URL from the identity provider
func (h *AuthHandler) RedirectURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.provider.RedirectURL(r.Context())
	if err != nil {
		h.logger.Error("Failed to get oauth redirect url", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to get redirect url")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, RedirectURLResponse{RedirectURL: url})
}

// CreateSession exchanges an authorization code and sets the session cookie
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Code == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "No authorization code provided")
		return
	}

	token, err := h.provider.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingCode):
			middleware.RespondWithError(w, http.StatusBadRequest, "No authorization code provided")
		case errors.Is(err, identity.ErrInvalidSession):
			middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		default:
			h.logger.Error("Failed to exchange authorization code", zap.Error(err))
			middleware.RespondWithError(w, http.StatusBadGateway, "failed to create session")
		}
		return
	}

	http.SetCookie(w, h.cookie.build(token, int(h.cookie.MaxAge.Seconds())))
	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Logout revokes the session, if any, and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r, h.cookie.Name); token != "" {
		if err := h.provider.Revoke(r.Context(), token); err != nil {
			h.logger.Warn("Failed to revoke session", zap.Error(err))
		}
	}

	// Negative MaxAge emits Max-Age=0
	http.SetCookie(w, h.cookie.build("", -1))
	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Me returns the authenticated identity user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}
