// Package reconciler merges bus events into a locally held trip snapshot.
// Delivery is at-least-once, so every merge deduplicates by entity id; update
// events replace the stored record wholesale because payloads are authoritative
// and complete for their entity.
package reconciler

import (
	"encoding/json"
	"sort"

	"github.com/tripweave/tripweave-backend/types"
)

// Snapshot is one consumer's view of a trip and its sub-resources. Each client
// owns exactly one instance; it is only updated through Apply.
type Snapshot struct {
	Trip         *types.Trip
	Participants map[string]types.Participant
	Expenses     map[string]types.Expense
	Activities   map[string]types.Activity
	Tasks        map[string]types.Task
	Polls        map[string]types.PollResponse
	Messages     []types.Message

	messageIDs map[string]bool
}

// NewSnapshot returns an empty snapshot for a trip.
func NewSnapshot(trip *types.Trip) *Snapshot {
	return &Snapshot{
		Trip:         trip,
		Participants: make(map[string]types.Participant),
		Expenses:     make(map[string]types.Expense),
		Activities:   make(map[string]types.Activity),
		Tasks:        make(map[string]types.Task),
		Polls:        make(map[string]types.PollResponse),
		messageIDs:   make(map[string]bool),
	}
}

// Apply merges one event into the snapshot. Events of unknown kind, or scoped
// to a different trip, are ignored without error: the bus may carry kinds this
// consumer does not understand, and dropping them must not poison the stream.
func (s *Snapshot) Apply(event types.Event) error {
	if s.Trip != nil && event.TripID != "" && event.TripID != s.Trip.ID {
		return nil
	}

	switch event.Type {
	case types.EventTypeTripCreated, types.EventTypeTripStatusUpdated:
		var trip types.Trip
		if err := json.Unmarshal(event.Payload, &trip); err != nil {
			return err
		}
		s.Trip = &trip

	case types.EventTypeParticipantInvited, types.EventTypeParticipantResponded:
		var p types.Participant
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		s.Participants[p.ID] = p

	case types.EventTypeExpenseCreated, types.EventTypeExpenseSettled:
		var e types.Expense
		if err := json.Unmarshal(event.Payload, &e); err != nil {
			return err
		}
		s.Expenses[e.ID] = e

	case types.EventTypeActivityCreated:
		var a types.Activity
		if err := json.Unmarshal(event.Payload, &a); err != nil {
			return err
		}
		s.Activities[a.ID] = a

	case types.EventTypeTaskCreated, types.EventTypeTaskUpdated:
		var t types.Task
		if err := json.Unmarshal(event.Payload, &t); err != nil {
			return err
		}
		s.Tasks[t.ID] = t

	case types.EventTypePollCreated, types.EventTypePollVoted:
		var p types.PollResponse
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		s.Polls[p.ID] = p

	case types.EventTypeMessageCreated:
		var m types.Message
		if err := json.Unmarshal(event.Payload, &m); err != nil {
			return err
		}
		s.appendMessage(m)
	}

	return nil
}

// appendMessage inserts a message once, keeping CreatedAt order. A duplicate
// id (redelivery, or the initiator's own optimistic insert) is a no-op.
func (s *Snapshot) appendMessage(m types.Message) {
	if s.messageIDs == nil {
		s.messageIDs = make(map[string]bool)
	}
	if s.messageIDs[m.ID] {
		return
	}
	s.messageIDs[m.ID] = true
	s.Messages = append(s.Messages, m)
	sort.SliceStable(s.Messages, func(i, j int) bool {
		return s.Messages[i].CreatedAt.Before(s.Messages[j].CreatedAt)
	})
}
