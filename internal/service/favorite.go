package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mealdex/mealdex/internal/model"
	"github.com/mealdex/mealdex/internal/repository"
)

// FavoriteStore is the persistence contract for the favorites ledger.
// *repository.Repository satisfies it.
type FavoriteStore interface {
	GetFavorite(ctx context.Context, userID, recipeID string) (*model.Favorite, error)
	CreateFavorite(ctx context.Context, fav *model.Favorite) error
	DeleteFavorite(ctx context.Context, userID, recipeID string) error
	ListFavorites(ctx context.Context, userID string) ([]model.Favorite, error)
}

// FavoriteService maintains the per-user set of favorited recipes.
type FavoriteService struct {
	store FavoriteStore
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(store FavoriteStore) *FavoriteService {
	return &FavoriteService{store: store}
}

// Toggle flips the favorite state for (userID, recipeID) and reports the
// resulting state: true means favorited. The read-then-act sequence is not
// atomic; two concurrent toggles may both observe "absent" and both insert.
// The unique constraint catches the loser, which is then treated as
// "already favorited" rather than an error.
func (s *FavoriteService) Toggle(ctx context.Context, userID, recipeID string) (bool, error) {
	_, err := s.store.GetFavorite(ctx, userID, recipeID)
	switch {
	case err == nil:
		if err := s.store.DeleteFavorite(ctx, userID, recipeID); err != nil {
			// A concurrent toggle may have deleted it first; converged state.
			if errors.Is(err, repository.ErrFavoriteNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil

	case errors.Is(err, repository.ErrFavoriteNotFound):
		fav := &model.Favorite{
			ID:        ulid.Make().String(),
			UserID:    userID,
			RecipeID:  recipeID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.CreateFavorite(ctx, fav); err != nil {
			if errors.Is(err, repository.ErrFavoriteExists) {
				return true, nil
			}
			return false, fmt.Errorf("failed to add favorite: %w", err)
		}
		return true, nil

	default:
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
}

// List returns the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]model.Favorite, error) {
	favorites, err := s.store.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
