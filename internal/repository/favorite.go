package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mealdex/mealdex/internal/model"
)

// Common errors for favorite repository operations.
var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("favorite already exists")
)

// CreateFavorite inserts a new favorite row.
// Returns ErrFavoriteExists when the (user, recipe) pair is already present;
// the unique constraint is the backstop for concurrent duplicate toggles.
func (r *Repository) CreateFavorite(ctx context.Context, fav *model.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, recipe_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		fav.ID,
		fav.UserID,
		fav.RecipeID,
		fav.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrFavoriteExists
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	return nil
}

// GetFavorite retrieves the favorite for a (user, recipe) pair.
func (r *Repository) GetFavorite(ctx context.Context, userID, recipeID string) (*model.Favorite, error) {
	query := `
		SELECT id, user_id, recipe_id, created_at
		FROM favorites
		WHERE user_id = $1 AND recipe_id = $2
	`

	var fav model.Favorite
	err := r.pool.QueryRow(ctx, query, userID, recipeID).Scan(
		&fav.ID,
		&fav.UserID,
		&fav.RecipeID,
		&fav.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	return &fav, nil
}

// DeleteFavorite removes the favorite for a (user, recipe) pair.
func (r *Repository) DeleteFavorite(ctx context.Context, userID, recipeID string) error {
	query := `
		DELETE FROM favorites
		WHERE user_id = $1 AND recipe_id = $2
	`

	result, err := r.pool.Exec(ctx, query, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

// ListFavorites retrieves all favorites for a user, newest first.
// No pagination at this level; pagination is a presentation concern.
func (r *Repository) ListFavorites(ctx context.Context, userID string) ([]model.Favorite, error) {
	query := `
		SELECT id, user_id, recipe_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.Favorite, 0)
	for rows.Next() {
		var fav model.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.RecipeID, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}
