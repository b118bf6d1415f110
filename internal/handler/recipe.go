package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mealdex/mealdex/internal/mealdb"
)

// RecipeHandler serves recipe data proxied from the upstream API.
type RecipeHandler struct {
	gateway *mealdb.Gateway
	logger  *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(gateway *mealdb.Gateway, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// Featured handles GET /api/recipes/featured.
func (h *RecipeHandler) Featured(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.gateway.Featured(r.Context())
	if err != nil {
		h.handleGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// All handles GET /api/recipes.
func (h *RecipeHandler) All(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.gateway.AllRecipes(r.Context())
	if err != nil {
		h.handleGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Search handles GET /api/recipes/search?q=.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	recipes, err := h.gateway.Search(r.Context(), query)
	if err != nil {
		h.handleGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Categories handles GET /api/recipes/categories.
func (h *RecipeHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.gateway.Categories(r.Context())
	if err != nil {
		h.handleGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Areas handles GET /api/recipes/areas.
func (h *RecipeHandler) Areas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.gateway.Areas(r.Context())
	if err != nil {
		h.handleGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

// handleGatewayError maps gateway errors to HTTP responses.
// Exhausted retries surface as a generic 502; the transport error is
// logged but never rendered.
func (h *RecipeHandler) handleGatewayError(w http.ResponseWriter, err error) {
	if errors.Is(err, mealdb.ErrUpstream) {
		h.logger.Error("upstream_failure", "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_FAILURE", "Recipe service is temporarily unavailable")
		return
	}

	h.logger.Error("internal_error", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
}
