package models

import (
	"context"
	goerrors "errors"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/types"
)

const tripEventSource = "trip_model"

// TripModel owns the trip lifecycle and participant membership.
type TripModel struct {
	store     store.TripStore
	guard     AccessVerifier
	publisher types.EventPublisher
	log       *zap.SugaredLogger
}

func NewTripModel(tripStore store.TripStore, guard AccessVerifier, publisher types.EventPublisher) *TripModel {
	return &TripModel{
		store:     tripStore,
		guard:     guard,
		publisher: publisher,
		log:       logger.GetLogger().Named("trip"),
	}
}

// CreateTrip persists a new trip with the creator as its accepted owner in one
// transaction, then announces it on the trip channel and the creator's
// personal channel.
func (m *TripModel) CreateTrip(ctx context.Context, userID string, req *types.TripCreate) (*types.Trip, error) {
	if err := validateTripCreate(req); err != nil {
		return nil, err
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = types.TripVisibilityPrivate
	}

	trip := &types.Trip{
		Name:        req.Name,
		Description: req.Description,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      types.TripStatusPlanning,
		Visibility:  visibility,
		CreatedBy:   userID,
	}

	owner := &types.Participant{
		UserID: userID,
		Role:   types.ParticipantRoleOwner,
		Status: types.ParticipantStatusAccepted,
	}
	tripID, err := m.store.CreateTripWithOwner(ctx, trip, owner)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	created, err := m.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeTripCreated, tripID, userID, created, tripEventSource)
	publishEntity(ctx, m.publisher, m.log, types.UserChannel(userID),
		types.EventTypeTripCreated, tripID, userID, created, tripEventSource)

	return created, nil
}

// GetTrip returns the trip after verifying the caller may read it.
func (m *TripModel) GetTrip(ctx context.Context, tripID, userID string) (*types.Trip, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}

	trip, err := m.store.GetTrip(ctx, tripID)
	if err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("trip", tripID)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return trip, nil
}

// ListUserTrips returns all trips where the user holds an invited or accepted
// participant record.
func (m *TripModel) ListUserTrips(ctx context.Context, userID string) ([]*types.Trip, error) {
	trips, err := m.store.ListUserTrips(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return trips, nil
}

// UpdateTripStatus moves the trip through its lifecycle. Only transitions in
// the fixed matrix are allowed; completed and cancelled are terminal.
func (m *TripModel) UpdateTripStatus(ctx context.Context, tripID, userID string, next types.TripStatus) (*types.Trip, error) {
	if !next.IsValid() {
		return nil, errors.ValidationFailed("invalid status", "unknown trip status: "+string(next))
	}

	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityManage); err != nil {
		return nil, err
	}

	current, err := m.store.GetTrip(ctx, tripID)
	if err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("trip", tripID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if !current.Status.IsValidTransition(next) {
		return nil, errors.InvalidStatusTransition(current.Status.String(), next.String())
	}

	updated, err := m.store.UpdateTripStatus(ctx, tripID, next)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeTripStatusUpdated, tripID, userID, updated, tripEventSource)

	return updated, nil
}

// ListParticipants returns every participant record on the trip, any status.
func (m *TripModel) ListParticipants(ctx context.Context, tripID, userID string) ([]*types.Participant, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}

	participants, err := m.store.ListParticipants(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return participants, nil
}

// InviteParticipant creates an INVITED record for the user. Owner only. A
// repeat invite for the same user is a conflict, not an upsert.
func (m *TripModel) InviteParticipant(ctx context.Context, tripID, inviterID string, req *types.InviteParticipantRequest) (*types.Participant, error) {
	if _, err := m.guard.Authorize(ctx, tripID, inviterID, types.CapabilityInviteParticipant); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = types.ParticipantRoleMember
	}
	if !role.IsValid() || role == types.ParticipantRoleOwner {
		return nil, errors.ValidationFailed("invalid role", "invitable roles are ADMIN, MEMBER and VIEWER")
	}
	if req.UserID == inviterID {
		return nil, errors.ValidationFailed("invalid invitation", "cannot invite yourself")
	}

	participant := &types.Participant{
		TripID:    tripID,
		UserID:    req.UserID,
		Role:      role,
		Status:    types.ParticipantStatusInvited,
		InvitedBy: &inviterID,
	}

	if _, err := m.store.AddParticipant(ctx, participant); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, errors.Conflict("user already invited", "a participant record already exists for this user")
		}
		return nil, errors.NewDatabaseError(err)
	}

	created, err := m.store.GetParticipant(ctx, tripID, req.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeParticipantInvited, tripID, inviterID, created, tripEventSource)
	publishEntity(ctx, m.publisher, m.log, types.UserChannel(req.UserID),
		types.EventTypeParticipantInvited, tripID, req.UserID, created, tripEventSource)

	return created, nil
}

// RespondToInvitation moves the caller's own record from INVITED to ACCEPTED
// or DECLINED. Any other starting status is a conflict.
func (m *TripModel) RespondToInvitation(ctx context.Context, tripID, userID string, accept bool) (*types.Participant, error) {
	participant, err := m.store.GetParticipant(ctx, tripID, userID)
	if err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("trip", tripID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if participant.Status != types.ParticipantStatusInvited {
		return nil, errors.Conflict("invitation already resolved",
			"current status is "+string(participant.Status))
	}

	next := types.ParticipantStatusDeclined
	if accept {
		next = types.ParticipantStatusAccepted
	}

	updated, err := m.store.UpdateParticipantStatus(ctx, tripID, userID, next)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeParticipantResponded, tripID, userID, updated, tripEventSource)

	return updated, nil
}

func validateTripCreate(req *types.TripCreate) error {
	if req.Name == "" {
		return errors.ValidationFailed("invalid trip", "name is required")
	}
	if req.Visibility != "" && !req.Visibility.IsValid() {
		return errors.ValidationFailed("invalid trip", "unknown visibility: "+string(req.Visibility))
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return errors.ValidationFailed("invalid trip", "end date cannot precede start date")
	}
	return nil
}
