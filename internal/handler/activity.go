package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mealdex/mealdex/internal/auth"
	"github.com/mealdex/mealdex/internal/handler/dto"
	"github.com/mealdex/mealdex/internal/model"
	"github.com/mealdex/mealdex/internal/service"
)

// ActivityHandler handles the dashboard activity feed endpoints.
// Both routes run behind RequireAuth.
type ActivityHandler struct {
	svc    *service.ActivityService
	logger *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(svc *service.ActivityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		svc:    svc,
		logger: logger,
	}
}

// Record handles POST /api/activities.
func (h *ActivityHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	activity, err := h.svc.Record(r.Context(), service.RecordInput{
		UserID:   auth.UserIDFromContext(r.Context()),
		Type:     model.ActivityType(req.Type),
		RecipeID: req.RecipeID,
		Details:  req.Details,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidActivityType) {
			writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Unknown activity type")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ActivityResponse{Activity: *activity})
}

// Recent handles GET /api/activities.
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	activities, err := h.svc.Recent(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ActivitiesResponse{Activities: activities})
}
