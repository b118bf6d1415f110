package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mealdex/mealdex/internal/auth"
	"github.com/mealdex/mealdex/internal/handler/dto"
	"github.com/mealdex/mealdex/internal/service"
)

// FavoriteHandler handles the favorites endpoints. Both routes run behind
// RequireAuth, so an identity is always present in context.
type FavoriteHandler struct {
	svc    *service.FavoriteService
	logger *slog.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(svc *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		svc:    svc,
		logger: logger,
	}
}

// Toggle handles POST /api/favorites.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req dto.ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	req.RecipeID = strings.TrimSpace(req.RecipeID)
	if req.RecipeID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "recipeId is required")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	isFavorited, err := h.svc.Toggle(r.Context(), userID, req.RecipeID)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("favorite_toggled",
		"user_id", userID,
		"recipe_id", req.RecipeID,
		"is_favorited", isFavorited,
	)

	writeJSON(w, http.StatusOK, dto.ToggleFavoriteResponse{
		Success:     true,
		IsFavorited: isFavorited,
	})
}

// List handles GET /api/favorites.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	favorites, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.FavoritesResponse{Favorites: favorites})
}
