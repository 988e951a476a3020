package postgres

import (
	"context"

	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

// ActivityStore implements store.ActivityStore.
type ActivityStore struct {
	db store.Querier
}

func NewActivityStore(db store.Querier) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) CreateActivity(ctx context.Context, activity *types.Activity) (string, error) {
	query := `
		INSERT INTO activities (trip_id, title, location, scheduled_for, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := s.db.QueryRow(ctx, query,
		activity.TripID,
		activity.Title,
		activity.Location,
		activity.ScheduledFor,
		activity.CreatedBy,
	).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return "", err
	}
	return activity.ID, nil
}

func (s *ActivityStore) ListTripActivities(ctx context.Context, tripID string) ([]*types.Activity, error) {
	query := `
		SELECT id, trip_id, title, location, scheduled_for, created_by, created_at
		FROM activities
		WHERE trip_id = $1
		ORDER BY scheduled_for ASC NULLS LAST, created_at ASC`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*types.Activity
	for rows.Next() {
		a := &types.Activity{}
		err := rows.Scan(&a.ID, &a.TripID, &a.Title, &a.Location, &a.ScheduledFor, &a.CreatedBy, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
