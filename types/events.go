package types

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tripweave/tripweave-backend/errors"
)

type EventType string

const (
	EventTypeTripCreated       EventType = "trip.created"
	EventTypeTripStatusUpdated EventType = "trip.status_updated"

	EventTypeParticipantInvited   EventType = "participant.invited"
	EventTypeParticipantResponded EventType = "participant.responded"

	EventTypeExpenseCreated EventType = "expense.created"
	EventTypeExpenseSettled EventType = "expense.settled"

	EventTypeActivityCreated EventType = "activity.created"

	EventTypeTaskCreated EventType = "task.created"
	EventTypeTaskUpdated EventType = "task.updated"

	EventTypePollCreated EventType = "poll.created"
	EventTypePollVoted   EventType = "poll.voted"

	EventTypeMessageCreated EventType = "message.created"

	EventTypeBankLinked EventType = "bank.linked"
)

// TripChannel names the pub/sub channel carrying a trip's events.
func TripChannel(tripID string) string {
	return "trip-" + tripID
}

// UserChannel names the personal channel carrying a user's cross-trip
// notifications (new trip, invitation, bank link).
func UserChannel(userID string) string {
	return "user-" + userID
}

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TripID    string    `json:"tripId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Version   int       `json:"version"`
}

type EventMetadata struct {
	CorrelationID string `json:"correlationId,omitempty"`
	Source        string `json:"source"`
}

// Event is a fire-and-forget notification of a completed mutation. The payload
// carries the full mutated entity so receivers can update their local view
// without a follow-up fetch.
type Event struct {
	BaseEvent
	Metadata EventMetadata   `json:"metadata"`
	Payload  json.RawMessage `json:"payload"`
}

func (e Event) Validate() error {
	if e.ID == "" {
		return errors.ValidationFailed("invalid event", "event ID is required")
	}
	if e.Type == "" {
		return errors.ValidationFailed("invalid event", "event type is required")
	}
	if e.TripID == "" && e.UserID == "" {
		return errors.ValidationFailed("invalid event", "a trip or user scope is required")
	}
	if e.Timestamp.IsZero() {
		return errors.ValidationFailed("invalid event", "timestamp is required")
	}
	return nil
}

// EventPublisher fans events out to channel subscribers. Delivery is
// at-least-once and FIFO within a channel; publish failures never roll back
// the mutation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, event Event) error
	PublishBatch(ctx context.Context, channel string, events []Event) error
	Subscribe(ctx context.Context, channel string, subscriberID string, filters ...EventType) (<-chan Event, error)
	Unsubscribe(ctx context.Context, channel string, subscriberID string) error
}
