package models

import (
	"context"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/types"
)

const activityEventSource = "activity_model"

// ActivityModel manages dated itinerary entries.
type ActivityModel struct {
	store     store.ActivityStore
	guard     AccessVerifier
	publisher types.EventPublisher
	log       *zap.SugaredLogger
}

func NewActivityModel(activityStore store.ActivityStore, guard AccessVerifier, publisher types.EventPublisher) *ActivityModel {
	return &ActivityModel{
		store:     activityStore,
		guard:     guard,
		publisher: publisher,
		log:       logger.GetLogger().Named("activity"),
	}
}

// CreateActivity adds an itinerary entry.
func (m *ActivityModel) CreateActivity(ctx context.Context, tripID, userID string, req *types.ActivityCreate) (*types.Activity, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityContribute); err != nil {
		return nil, err
	}

	activity := &types.Activity{
		TripID:       tripID,
		Title:        req.Title,
		Location:     req.Location,
		ScheduledFor: req.ScheduledFor,
		CreatedBy:    userID,
	}

	if _, err := m.store.CreateActivity(ctx, activity); err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeActivityCreated, tripID, userID, activity, activityEventSource)

	return activity, nil
}

// ListActivities returns all itinerary entries on the trip.
func (m *ActivityModel) ListActivities(ctx context.Context, tripID, userID string) ([]*types.Activity, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}

	activities, err := m.store.ListTripActivities(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return activities, nil
}
