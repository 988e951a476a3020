package models

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tripweave/tripweave-backend/types"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type MockTripStore struct {
	mock.Mock
}

func (m *MockTripStore) CreateTripWithOwner(ctx context.Context, trip *types.Trip, owner *types.Participant) (string, error) {
	args := m.Called(ctx, trip, owner)
	return args.String(0), args.Error(1)
}

func (m *MockTripStore) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Trip), args.Error(1)
}

func (m *MockTripStore) ListUserTrips(ctx context.Context, userID string) ([]*types.Trip, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Trip), args.Error(1)
}

func (m *MockTripStore) UpdateTripStatus(ctx context.Context, tripID string, status types.TripStatus) (*types.Trip, error) {
	args := m.Called(ctx, tripID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Trip), args.Error(1)
}

func (m *MockTripStore) AddParticipant(ctx context.Context, participant *types.Participant) (string, error) {
	args := m.Called(ctx, participant)
	return args.String(0), args.Error(1)
}

func (m *MockTripStore) GetParticipant(ctx context.Context, tripID, userID string) (*types.Participant, error) {
	args := m.Called(ctx, tripID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Participant), args.Error(1)
}

func (m *MockTripStore) ListParticipants(ctx context.Context, tripID string) ([]*types.Participant, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Participant), args.Error(1)
}

func (m *MockTripStore) UpdateParticipantStatus(ctx context.Context, tripID, userID string, status types.ParticipantStatus) (*types.Participant, error) {
	args := m.Called(ctx, tripID, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Participant), args.Error(1)
}

type MockExpenseStore struct {
	mock.Mock
}

func (m *MockExpenseStore) CreateExpenseWithShares(ctx context.Context, expense *types.Expense, shares []*types.ExpenseShare) (string, error) {
	args := m.Called(ctx, expense, shares)
	return args.String(0), args.Error(1)
}

func (m *MockExpenseStore) GetExpense(ctx context.Context, id string) (*types.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Expense), args.Error(1)
}

func (m *MockExpenseStore) ListTripExpenses(ctx context.Context, tripID string) ([]*types.Expense, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Expense), args.Error(1)
}

func (m *MockExpenseStore) MarkShareSettled(ctx context.Context, expenseID, userID string) error {
	args := m.Called(ctx, expenseID, userID)
	return args.Error(0)
}

type MockPollStore struct {
	mock.Mock
}

func (m *MockPollStore) CreatePollWithOptions(ctx context.Context, poll *types.Poll, options []*types.PollOption) (string, error) {
	args := m.Called(ctx, poll, options)
	return args.String(0), args.Error(1)
}

func (m *MockPollStore) GetPoll(ctx context.Context, pollID, tripID string) (*types.Poll, error) {
	args := m.Called(ctx, pollID, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Poll), args.Error(1)
}

func (m *MockPollStore) ListTripPolls(ctx context.Context, tripID string) ([]*types.Poll, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Poll), args.Error(1)
}

func (m *MockPollStore) ListPollOptions(ctx context.Context, pollID string) ([]*types.PollOption, error) {
	args := m.Called(ctx, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.PollOption), args.Error(1)
}

func (m *MockPollStore) SwapVote(ctx context.Context, pollID, optionID, userID string) (*types.Vote, error) {
	args := m.Called(ctx, pollID, optionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Vote), args.Error(1)
}

func (m *MockPollStore) ListVotesByPoll(ctx context.Context, pollID string) ([]*types.Vote, error) {
	args := m.Called(ctx, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Vote), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel string, event types.Event) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockPublisher) PublishBatch(ctx context.Context, channel string, events []types.Event) error {
	args := m.Called(ctx, channel, events)
	return args.Error(0)
}

func (m *MockPublisher) Subscribe(ctx context.Context, channel string, subscriberID string, filters ...types.EventType) (<-chan types.Event, error) {
	args := m.Called(ctx, channel, subscriberID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan types.Event), args.Error(1)
}

func (m *MockPublisher) Unsubscribe(ctx context.Context, channel string, subscriberID string) error {
	args := m.Called(ctx, channel, subscriberID)
	return args.Error(0)
}

// allowAllGuard bypasses authorization so model tests exercise only the
// behavior under test.
type allowAllGuard struct {
	participant *types.Participant
}

func (g *allowAllGuard) Authorize(ctx context.Context, tripID, userID string, capability types.Capability) (*types.Participant, error) {
	if g.participant != nil {
		return g.participant, nil
	}
	return &types.Participant{
		TripID: tripID,
		UserID: userID,
		Role:   types.ParticipantRoleOwner,
		Status: types.ParticipantStatusAccepted,
	}, nil
}

// denyGuard returns a fixed error from every authorization check.
type denyGuard struct {
	err error
}

func (g *denyGuard) Authorize(ctx context.Context, tripID, userID string, capability types.Capability) (*types.Participant, error) {
	return nil, g.err
}
