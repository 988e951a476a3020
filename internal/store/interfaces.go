// Package store defines the named persistence operations the models consume.
// The surface is deliberately narrow: fixed operations instead of an open
// query interface, so the contract stays portable across storage engines.
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tripweave/tripweave-backend/types"
)

// Querier is the subset of pgxpool.Pool the postgres stores depend on.
// pgxmock satisfies it in tests.
type Querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripStore handles trips and their participant records.
type TripStore interface {
	// CreateTripWithOwner persists the trip and the creator's owner record in
	// one transaction; a trip never exists without its owner.
	CreateTripWithOwner(ctx context.Context, trip *types.Trip, owner *types.Participant) (string, error)
	GetTrip(ctx context.Context, id string) (*types.Trip, error)
	ListUserTrips(ctx context.Context, userID string) ([]*types.Trip, error)
	UpdateTripStatus(ctx context.Context, tripID string, status types.TripStatus) (*types.Trip, error)

	AddParticipant(ctx context.Context, participant *types.Participant) (string, error)
	GetParticipant(ctx context.Context, tripID, userID string) (*types.Participant, error)
	ListParticipants(ctx context.Context, tripID string) ([]*types.Participant, error)
	UpdateParticipantStatus(ctx context.Context, tripID, userID string, status types.ParticipantStatus) (*types.Participant, error)
}

// ExpenseStore handles expenses and their shares.
type ExpenseStore interface {
	// CreateExpenseWithShares persists the expense and all of its shares in
	// one transaction; nothing is written on failure.
	CreateExpenseWithShares(ctx context.Context, expense *types.Expense, shares []*types.ExpenseShare) (string, error)
	GetExpense(ctx context.Context, id string) (*types.Expense, error)
	ListTripExpenses(ctx context.Context, tripID string) ([]*types.Expense, error)
	// MarkShareSettled flips is_settled with an equality filter so concurrent
	// settle attempts converge: the first write wins, a repeat is a no-op
	// success. ErrNotFound only when the share does not exist at all.
	MarkShareSettled(ctx context.Context, expenseID, userID string) error
}

// PollStore handles polls, options, and votes.
type PollStore interface {
	CreatePollWithOptions(ctx context.Context, poll *types.Poll, options []*types.PollOption) (string, error)
	GetPoll(ctx context.Context, pollID, tripID string) (*types.Poll, error)
	ListTripPolls(ctx context.Context, tripID string) ([]*types.Poll, error)
	ListPollOptions(ctx context.Context, pollID string) ([]*types.PollOption, error)
	// SwapVote upserts the caller's vote: any prior vote in the poll moves to
	// the new option, so the poll never holds two votes for one user.
	SwapVote(ctx context.Context, pollID, optionID, userID string) (*types.Vote, error)
	ListVotesByPoll(ctx context.Context, pollID string) ([]*types.Vote, error)
}

// TaskStore handles kanban tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, task *types.Task) (string, error)
	GetTask(ctx context.Context, taskID, tripID string) (*types.Task, error)
	ListTripTasks(ctx context.Context, tripID string) ([]*types.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID, tripID string, status types.TaskStatus) (*types.Task, error)
}

// MessageStore handles chat messages.
type MessageStore interface {
	CreateMessage(ctx context.Context, message *types.Message) (string, error)
	ListTripMessages(ctx context.Context, tripID string) ([]*types.Message, error)
}

// ActivityStore handles itinerary activities.
type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *types.Activity) (string, error)
	ListTripActivities(ctx context.Context, tripID string) ([]*types.Activity, error)
}
