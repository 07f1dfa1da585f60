package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"shophub/internal/config"
	"shophub/internal/database"
	"shophub/internal/identity"
	custommiddleware "shophub/internal/middleware"
	"shophub/internal/repository"
	"shophub/internal/service"
	"shophub/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string            `json:"status"`
	Database map[string]string `json:"database"`
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers into the router.
// redisClient may be nil, which disables rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client) (*Server, error) {
	provider, err := newIdentityProvider(cfg, redisClient, logger)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

	router.Get("/health", healthHandler(db))

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.DB())
	cartRepo := repository.NewCartRepository(db.DB())
	wishlistRepo := repository.NewWishlistRepository(db.DB())
	profileRepo := repository.NewProfileRepository(db.DB())
	reviewRepo := repository.NewReviewRepository(db.DB())

	// Initialize services
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	profileService := service.NewProfileService(profileRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)

	// Initialize handlers
	productHandler := transport.NewProductHandler(catalogService, logger)
	reviewHandler := transport.NewReviewHandler(reviewService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	wishlistHandler := transport.NewWishlistHandler(wishlistService, logger)
	profileHandler := transport.NewProfileHandler(profileService, logger)
	authHandler := transport.NewAuthHandler(provider, transport.SessionCookie{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.MaxAge,
	}, logger)

	authMiddleware := custommiddleware.SessionMiddleware(provider, cfg.Session.CookieName, logger)

	// Every /api request counts against its client address; protected routes
	// also count against the user once the session is resolved.
	var rateLimit func(http.Handler) http.Handler
	if redisClient != nil {
		rateLimit = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit",
		}, logger)

		sessionMiddleware := authMiddleware
		authMiddleware = func(next http.Handler) http.Handler {
			return sessionMiddleware(rateLimit(next))
		}
	}

	router.Group(func(r chi.Router) {
		if rateLimit != nil {
			r.Use(rateLimit)
		}

		productHandler.RegisterRoutes(r)
		reviewHandler.RegisterRoutes(r, authMiddleware)
		cartHandler.RegisterRoutes(r, authMiddleware)
		wishlistHandler.RegisterRoutes(r, authMiddleware)
		profileHandler.RegisterRoutes(r, authMiddleware)
		authHandler.RegisterRoutes(r, authMiddleware)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

// newIdentityProvider talks to the users service when one is configured.
// Local sessions accept any login code, so they are only available in
// development.
func newIdentityProvider(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) (identity.Provider, error) {
	if cfg.Identity.APIURL != "" {
		logger.Info("Using users service for identity", zap.String("url", cfg.Identity.APIURL))
		timeout := time.Duration(cfg.Identity.RequestTimeoutSec) * time.Second
		return identity.NewClient(cfg.Identity.APIURL, cfg.Identity.APIKey, timeout, logger), nil
	}

	if !cfg.IsDevelopment() {
		return nil, errors.New("USERS_SERVICE_API_URL is required outside development")
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("SESSION_SECRET not set, local sessions will not survive a restart")
	}

	logger.Info("Using local identity provider", zap.Bool("revocation", redisClient != nil))
	return identity.NewLocal(secret, cfg.Identity.LocalRedirectURL, cfg.Session.MaxAge, redisClient, logger), nil
}

func healthHandler(db *database.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := db.Health(r.Context())
		if stats["status"] != "up" {
			custommiddleware.RespondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Database: stats})
			return
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", Database: stats})
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
