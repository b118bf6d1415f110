package repository

import (
	"context"
	"fmt"

	"github.com/mealdex/mealdex/internal/model"
)

// CreateActivity inserts a new activity record.
func (r *Repository) CreateActivity(ctx context.Context, activity *model.Activity) error {
	query := `
		INSERT INTO activities (id, user_id, type, recipe_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.UserID,
		activity.Type,
		activity.RecipeID,
		activity.Details,
		activity.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// ListRecentActivities retrieves the newest activities for a user,
// newest first, capped at limit.
func (r *Repository) ListRecentActivities(ctx context.Context, userID string, limit int) ([]model.Activity, error) {
	query := `
		SELECT id, user_id, type, recipe_id, details, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]model.Activity, 0)
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.RecipeID, &a.Details, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}
