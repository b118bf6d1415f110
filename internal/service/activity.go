package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mealdex/mealdex/internal/model"
)

// recentActivityLimit caps the dashboard activity feed.
const recentActivityLimit = 10

// ErrInvalidActivityType is returned for an unknown activity kind.
var ErrInvalidActivityType = errors.New("invalid activity type")

// ActivityStore is the persistence contract for the activity feed.
// *repository.Repository satisfies it.
type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *model.Activity) error
	ListRecentActivities(ctx context.Context, userID string, limit int) ([]model.Activity, error)
}

// ActivityService records and lists per-user recipe activity.
type ActivityService struct {
	store ActivityStore
}

// NewActivityService creates a new ActivityService.
func NewActivityService(store ActivityStore) *ActivityService {
	return &ActivityService{store: store}
}

// RecordInput defines input for recording an activity.
type RecordInput struct {
	UserID   string
	Type     model.ActivityType
	RecipeID string
	Details  string
}

// Record stores one activity entry for the user.
func (s *ActivityService) Record(ctx context.Context, input RecordInput) (*model.Activity, error) {
	if !input.Type.IsValid() {
		return nil, ErrInvalidActivityType
	}

	activity := &model.Activity{
		ID:        ulid.Make().String(),
		UserID:    input.UserID,
		Type:      input.Type,
		RecipeID:  input.RecipeID,
		Details:   input.Details,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	return activity, nil
}

// Recent returns the user's newest activities, capped at the feed limit.
func (s *ActivityService) Recent(ctx context.Context, userID string) ([]model.Activity, error) {
	activities, err := s.store.ListRecentActivities(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
