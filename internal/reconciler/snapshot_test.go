package reconciler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/tripweave-backend/types"
)

const tripID = "11111111-1111-1111-1111-111111111111"

func event(t *testing.T, eventType types.EventType, id string, payload interface{}) types.Event {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return types.Event{
		BaseEvent: types.BaseEvent{
			ID:        id,
			Type:      eventType,
			TripID:    tripID,
			Timestamp: time.Now(),
			Version:   1,
		},
		Payload: data,
	}
}

func TestApply_RedeliveredCreateIsIdempotent(t *testing.T) {
	snapshot := NewSnapshot(&types.Trip{ID: tripID})

	task := types.Task{ID: "task-1", TripID: tripID, Title: "Book hostel", Status: types.TaskStatusTodo}
	e := event(t, types.EventTypeTaskCreated, "event-1", task)

	require.NoError(t, snapshot.Apply(e))
	require.NoError(t, snapshot.Apply(e))

	assert.Len(t, snapshot.Tasks, 1)
	assert.Equal(t, "Book hostel", snapshot.Tasks["task-1"].Title)
}

func TestApply_UpdateReplacesWholesale(t *testing.T) {
	snapshot := NewSnapshot(&types.Trip{ID: tripID})

	created := types.Task{ID: "task-1", TripID: tripID, Title: "Book hostel", Status: types.TaskStatusTodo}
	updated := created
	updated.Status = types.TaskStatusDone

	require.NoError(t, snapshot.Apply(event(t, types.EventTypeTaskCreated, "event-1", created)))
	require.NoError(t, snapshot.Apply(event(t, types.EventTypeTaskUpdated, "event-2", updated)))

	assert.Len(t, snapshot.Tasks, 1)
	assert.Equal(t, types.TaskStatusDone, snapshot.Tasks["task-1"].Status)
}

func TestApply_OtherTripEventIgnored(t *testing.T) {
	snapshot := NewSnapshot(&types.Trip{ID: tripID})

	task := types.Task{ID: "task-1", TripID: "other-trip", Title: "Not ours"}
	e := event(t, types.EventTypeTaskCreated, "event-1", task)
	e.TripID = "other-trip"

	require.NoError(t, snapshot.Apply(e))
	assert.Empty(t, snapshot.Tasks)
}

func TestApply_UnknownKindIgnoredWithoutError(t *testing.T) {
	snapshot := NewSnapshot(&types.Trip{ID: tripID})

	e := event(t, types.EventTypeBankLinked, "event-1", map[string]string{"provider": "acme"})
	assert.NoError(t, snapshot.Apply(e))
}

func TestApply_MessagesDedupAndKeepOrder(t *testing.T) {
	snapshot := NewSnapshot(&types.Trip{ID: tripID})

	base := time.Now()
	first := types.Message{ID: "msg-1", TripID: tripID, Content: "first", CreatedAt: base}
	second := types.Message{ID: "msg-2", TripID: tripID, Content: "second", CreatedAt: base.Add(time.Second)}

	// Deliver out of order, with a redelivery of the first.
	require.NoError(t, snapshot.Apply(event(t, types.EventTypeMessageCreated, "e-2", second)))
	require.NoError(t, snapshot.Apply(event(t, types.EventTypeMessageCreated, "e-1", first)))
	require.NoError(t, snapshot.Apply(event(t, types.EventTypeMessageCreated, "e-3", first)))

	require.Len(t, snapshot.Messages, 2)
	assert.Equal(t, "msg-1", snapshot.Messages[0].ID)
	assert.Equal(t, "msg-2", snapshot.Messages[1].ID)
}

func TestApply_StatusUpdateReplacesTrip(t *testing.T) {
	snapshot := NewSnapshot(&types.Trip{ID: tripID, Status: types.TripStatusPlanning})

	updated := types.Trip{ID: tripID, Name: "Lisbon", Status: types.TripStatusConfirmed}
	require.NoError(t, snapshot.Apply(event(t, types.EventTypeTripStatusUpdated, "event-1", updated)))

	assert.Equal(t, types.TripStatusConfirmed, snapshot.Trip.Status)
}

func TestApply_ExpenseSettledReplacesShares(t *testing.T) {
	snapshot := NewSnapshot(&types.Trip{ID: tripID})

	expense := types.Expense{ID: "exp-1", TripID: tripID, IsShared: true,
		Shares: []types.ExpenseShare{{ID: "share-1", UserID: "alice"}}}
	require.NoError(t, snapshot.Apply(event(t, types.EventTypeExpenseCreated, "e-1", expense)))

	now := time.Now()
	expense.Shares[0].IsSettled = true
	expense.Shares[0].SettledAt = &now
	require.NoError(t, snapshot.Apply(event(t, types.EventTypeExpenseSettled, "e-2", expense)))

	require.Len(t, snapshot.Expenses, 1)
	assert.True(t, snapshot.Expenses["exp-1"].Shares[0].IsSettled)
}
