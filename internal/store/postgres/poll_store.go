package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

// PollStore implements store.PollStore.
type PollStore struct {
	db store.Querier
}

func NewPollStore(db store.Querier) *PollStore {
	return &PollStore{db: db}
}

const pollColumns = `id, trip_id, question, status, created_by, expires_at, created_at, updated_at`

func scanPoll(row pgx.Row) (*types.Poll, error) {
	p := &types.Poll{}
	err := row.Scan(
		&p.ID,
		&p.TripID,
		&p.Question,
		&p.Status,
		&p.CreatedBy,
		&p.ExpiresAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PollStore) CreatePollWithOptions(ctx context.Context, poll *types.Poll, options []*types.PollOption) (string, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO polls (trip_id, question, status, created_by, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		poll.TripID,
		poll.Question,
		types.PollStatusActive,
		poll.CreatedBy,
		poll.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	for _, opt := range options {
		_, err = tx.Exec(ctx, `
			INSERT INTO poll_options (poll_id, text, position)
			VALUES ($1, $2, $3)`,
			id,
			opt.Text,
			opt.Position,
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// GetPoll scopes the lookup by trip so a poll id from another trip reads as
// absent rather than leaking across trips.
func (s *PollStore) GetPoll(ctx context.Context, pollID, tripID string) (*types.Poll, error) {
	query := `
		SELECT ` + pollColumns + `
		FROM polls
		WHERE id = $1 AND trip_id = $2`

	return scanPoll(s.db.QueryRow(ctx, query, pollID, tripID))
}

func (s *PollStore) ListTripPolls(ctx context.Context, tripID string) ([]*types.Poll, error) {
	query := `
		SELECT ` + pollColumns + `
		FROM polls
		WHERE trip_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var polls []*types.Poll
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

func (s *PollStore) ListPollOptions(ctx context.Context, pollID string) ([]*types.PollOption, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, poll_id, text, position, created_at
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY position ASC`,
		pollID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []*types.PollOption
	for rows.Next() {
		opt := &types.PollOption{}
		err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.Position, &opt.CreatedAt)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// SwapVote upserts the caller's vote on the poll's unique (poll_id, user_id)
// constraint: a first vote inserts, a repeat vote moves to the new option.
func (s *PollStore) SwapVote(ctx context.Context, pollID, optionID, userID string) (*types.Vote, error) {
	query := `
		INSERT INTO poll_votes (poll_id, option_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (poll_id, user_id)
		DO UPDATE SET option_id = EXCLUDED.option_id, updated_at = NOW()
		RETURNING id, poll_id, option_id, user_id, created_at, updated_at`

	vote := &types.Vote{}
	err := s.db.QueryRow(ctx, query, pollID, optionID, userID).Scan(
		&vote.ID,
		&vote.PollID,
		&vote.OptionID,
		&vote.UserID,
		&vote.CreatedAt,
		&vote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return vote, nil
}

func (s *PollStore) ListVotesByPoll(ctx context.Context, pollID string) ([]*types.Vote, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, poll_id, option_id, user_id, created_at, updated_at
		FROM poll_votes
		WHERE poll_id = $1
		ORDER BY created_at ASC`,
		pollID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []*types.Vote
	for rows.Next() {
		v := &types.Vote{}
		err := rows.Scan(&v.ID, &v.PollID, &v.OptionID, &v.UserID, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
