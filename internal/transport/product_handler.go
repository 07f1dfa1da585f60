package transport

import (
	"net/http"

	"shophub/internal/middleware"
	"shophub/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler serves the anonymous catalog endpoints
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/search", h.SearchProducts)
	r.Get("/api/products/{id}", h.GetProduct)
	r.Get("/api/products/{id}/suggestions", h.SuggestProducts)
	r.Get("/api/categories", h.ListCategories)
}

// ListProducts returns every product, newest first
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "List products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns a single product
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Get product")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// SearchProducts filters by ?q= and/or ?category=
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	products, err := h.catalogService.SearchProducts(r.Context(), query.Get("q"), query.Get("category"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Search products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// SuggestProducts returns related products from the same category
func (h *ProductHandler) SuggestProducts(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Suggest products")
		return
	}

	products, err := h.catalogService.SuggestProducts(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Suggest products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ListCategories returns the distinct category labels
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "List categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}
