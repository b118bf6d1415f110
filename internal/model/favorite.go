package model

import "time"

// Favorite is a user's saved association with a recipe identifier.
// At most one row exists per (user, recipe) pair, enforced by a
// uniqueness constraint in the database.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}
