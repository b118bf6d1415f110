package dto

import "github.com/mealdex/mealdex/internal/model"

// ToggleFavoriteRequest is the body for POST /api/favorites.
type ToggleFavoriteRequest struct {
	RecipeID string `json:"recipeId"`
}

// ToggleFavoriteResponse reports the resulting favorite state.
type ToggleFavoriteResponse struct {
	Success     bool `json:"success"`
	IsFavorited bool `json:"isFavorited"`
}

// FavoritesResponse is the body for GET /api/favorites.
type FavoritesResponse struct {
	Favorites []model.Favorite `json:"favorites"`
}

// RecordActivityRequest is the body for POST /api/activities.
type RecordActivityRequest struct {
	Type     string `json:"type"`
	RecipeID string `json:"recipeId"`
	Details  string `json:"details,omitempty"`
}

// ActivityResponse wraps a single recorded activity.
type ActivityResponse struct {
	Activity model.Activity `json:"activity"`
}

// ActivitiesResponse is the body for GET /api/activities.
type ActivitiesResponse struct {
	Activities []model.Activity `json:"activities"`
}
