package models

import (
	"context"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/internal/events"
	"github.com/tripweave/tripweave-backend/types"
)

// publishEntity emits one event carrying the full mutated entity. Called only
// after the mutation has been committed; a publish failure is logged and
// swallowed so it can never surface as a failure of the operation itself.
func publishEntity(ctx context.Context, publisher types.EventPublisher, log *zap.SugaredLogger, channel string, eventType types.EventType, tripID, userID string, entity interface{}, source string) {
	if publisher == nil {
		return
	}
	if err := events.PublishEntity(ctx, publisher, channel, eventType, tripID, userID, entity, source); err != nil {
		log.Warnw("Failed to publish event",
			"error", err,
			"channel", channel,
			"eventType", eventType,
			"tripId", tripID,
		)
	}
}
