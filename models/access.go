// Package models holds the business layer: every mutating operation
// authorizes, validates, persists, then publishes exactly one event.
package models

import (
	"context"
	goerrors "errors"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

// AccessVerifier gates every trip-scoped operation on the caller's
// participant record.
type AccessVerifier interface {
	Authorize(ctx context.Context, tripID, userID string, capability types.Capability) (*types.Participant, error)
}

// AccessGuard implements AccessVerifier against the trip store.
//
// Existence-leakage policy: a user with no participant record gets NotFound
// whether or not the trip exists, so probing ids reveals nothing. Forbidden is
// reserved for users who hold a participant record but lack the status or
// role the operation requires.
type AccessGuard struct {
	store store.TripStore
}

func NewAccessGuard(tripStore store.TripStore) *AccessGuard {
	return &AccessGuard{store: tripStore}
}

func (g *AccessGuard) Authorize(ctx context.Context, tripID, userID string, capability types.Capability) (*types.Participant, error) {
	if _, err := g.store.GetTrip(ctx, tripID); err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("trip", tripID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	participant, err := g.store.GetParticipant(ctx, tripID, userID)
	if err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("trip", tripID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if participant.Status != types.ParticipantStatusAccepted {
		return nil, errors.Forbidden(
			"not an active participant",
			"the invitation must be accepted before accessing this trip",
		)
	}

	if !participant.Role.Allows(capability) {
		return nil, errors.Forbidden(
			"insufficient role",
			"role "+string(participant.Role)+" cannot perform "+string(capability),
		)
	}

	return participant, nil
}
