package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/types"
)

// compile-time check: RedisPublisher satisfies the bus contract.
var _ types.EventPublisher = (*RedisPublisher)(nil)

// PublishEntity builds a standard event whose payload is the full mutated
// entity and publishes it to the given channel. The payload must carry enough
// for receivers to update their local view without a follow-up fetch.
func PublishEntity(ctx context.Context, publisher types.EventPublisher, channel string, eventType types.EventType, tripID, userID string, entity interface{}, source string) error {
	payload, err := json.Marshal(entity)
	if err != nil {
		return errors.Wrap(err, errors.ServerError, "failed to marshal event payload")
	}

	event := types.Event{
		BaseEvent: types.BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			TripID:    tripID,
			UserID:    userID,
			Timestamp: time.Now(),
			Version:   1,
		},
		Metadata: types.EventMetadata{
			Source: source,
		},
		Payload: payload,
	}

	if err := publisher.Publish(ctx, channel, event); err != nil {
		return errors.Wrap(err, errors.ServerError, "failed to publish event")
	}
	return nil
}
