package model

import "time"

// ActivityType classifies a recorded user action.
type ActivityType string

const (
	ActivityView       ActivityType = "view"
	ActivityFavorite   ActivityType = "favorite"
	ActivityCollection ActivityType = "collection"
)

// IsValid checks if the activity type is one of the known kinds.
func (a ActivityType) IsValid() bool {
	return a == ActivityView || a == ActivityFavorite || a == ActivityCollection
}

// Activity records a single user action against a recipe,
// shown on the dashboard as a recent-activity feed.
type Activity struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Type      ActivityType `json:"type"`
	RecipeID  string       `json:"recipe_id"`
	Details   string       `json:"details,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
