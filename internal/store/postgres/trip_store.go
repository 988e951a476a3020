// Package postgres implements the store interfaces against PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

// TripStore implements store.TripStore.
type TripStore struct {
	db store.Querier
}

func NewTripStore(db store.Querier) *TripStore {
	return &TripStore{db: db}
}

const tripColumns = `id, name, description, destination, start_date, end_date,
		status, visibility, created_by, created_at, updated_at`

func scanTrip(row pgx.Row) (*types.Trip, error) {
	trip := &types.Trip{}
	err := row.Scan(
		&trip.ID,
		&trip.Name,
		&trip.Description,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&trip.Status,
		&trip.Visibility,
		&trip.CreatedBy,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

// CreateTripWithOwner writes the trip and its owner participant in a single
// transaction so a failed owner insert rolls the trip back too.
func (s *TripStore) CreateTripWithOwner(ctx context.Context, trip *types.Trip, owner *types.Participant) (string, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO trips (name, description, destination, start_date, end_date,
			status, visibility, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		trip.Name,
		trip.Description,
		trip.Destination,
		trip.StartDate,
		trip.EndDate,
		trip.Status,
		trip.Visibility,
		trip.CreatedBy,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO trip_participants (trip_id, user_id, role, status, invited_by)
		VALUES ($1, $2, $3, $4, $5)`,
		id,
		owner.UserID,
		owner.Role,
		owner.Status,
		owner.InvitedBy,
	)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *TripStore) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = $1`

	return scanTrip(s.db.QueryRow(ctx, query, id))
}

func (s *TripStore) ListUserTrips(ctx context.Context, userID string) ([]*types.Trip, error) {
	query := `
		SELECT t.id, t.name, t.description, t.destination, t.start_date, t.end_date,
			t.status, t.visibility, t.created_by, t.created_at, t.updated_at
		FROM trips t
		JOIN trip_participants p ON p.trip_id = t.id
		WHERE p.user_id = $1 AND p.status IN ('INVITED', 'ACCEPTED')
		ORDER BY t.created_at DESC`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*types.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

func (s *TripStore) UpdateTripStatus(ctx context.Context, tripID string, status types.TripStatus) (*types.Trip, error) {
	query := `
		UPDATE trips
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + tripColumns

	return scanTrip(s.db.QueryRow(ctx, query, status, tripID))
}

const participantColumns = `id, trip_id, user_id, role, status, invited_by, created_at, updated_at`

func scanParticipant(row pgx.Row) (*types.Participant, error) {
	p := &types.Participant{}
	err := row.Scan(
		&p.ID,
		&p.TripID,
		&p.UserID,
		&p.Role,
		&p.Status,
		&p.InvitedBy,
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

func (s *TripStore) AddParticipant(ctx context.Context, participant *types.Participant) (string, error) {
	query := `
		INSERT INTO trip_participants (trip_id, user_id, role, status, invited_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id string
	err := s.db.QueryRow(ctx, query,
		participant.TripID,
		participant.UserID,
		participant.Role,
		participant.Status,
		participant.InvitedBy,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *TripStore) GetParticipant(ctx context.Context, tripID, userID string) (*types.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM trip_participants
		WHERE trip_id = $1 AND user_id = $2`

	return scanParticipant(s.db.QueryRow(ctx, query, tripID, userID))
}

func (s *TripStore) ListParticipants(ctx context.Context, tripID string) ([]*types.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM trip_participants
		WHERE trip_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*types.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (s *TripStore) UpdateParticipantStatus(ctx context.Context, tripID, userID string, status types.ParticipantStatus) (*types.Participant, error) {
	query := `
		UPDATE trip_participants
		SET status = $1, updated_at = NOW()
		WHERE trip_id = $2 AND user_id = $3
		RETURNING ` + participantColumns

	return scanParticipant(s.db.QueryRow(ctx, query, status, tripID, userID))
}
