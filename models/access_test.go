package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

const (
	testTripID = "11111111-1111-1111-1111-111111111111"
	testUserID = "22222222-2222-2222-2222-222222222222"
)

func testTrip() *types.Trip {
	return &types.Trip{ID: testTripID, Name: "Lisbon", Status: types.TripStatusPlanning}
}

func requireAppError(t *testing.T, err error, errType apperrors.ErrorType) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected *AppError, got %T", err)
	assert.Equal(t, errType, appErr.Type)
	return appErr
}

func TestAccessGuard_MissingTripIsNotFound(t *testing.T) {
	tripStore := new(MockTripStore)
	tripStore.On("GetTrip", mock.Anything, testTripID).Return(nil, store.ErrNotFound)

	guard := NewAccessGuard(tripStore)
	_, err := guard.Authorize(context.Background(), testTripID, testUserID, types.CapabilityRead)

	requireAppError(t, err, apperrors.NotFoundError)
	tripStore.AssertExpectations(t)
}

func TestAccessGuard_NonParticipantGetsNotFound(t *testing.T) {
	// A stranger probing a real trip id must see the same NotFound as a
	// missing trip, never a Forbidden that confirms existence.
	tripStore := new(MockTripStore)
	tripStore.On("GetTrip", mock.Anything, testTripID).Return(testTrip(), nil)
	tripStore.On("GetParticipant", mock.Anything, testTripID, testUserID).Return(nil, store.ErrNotFound)

	guard := NewAccessGuard(tripStore)
	_, err := guard.Authorize(context.Background(), testTripID, testUserID, types.CapabilityRead)

	requireAppError(t, err, apperrors.NotFoundError)
}

func TestAccessGuard_InvitedParticipantIsForbidden(t *testing.T) {
	tripStore := new(MockTripStore)
	tripStore.On("GetTrip", mock.Anything, testTripID).Return(testTrip(), nil)
	tripStore.On("GetParticipant", mock.Anything, testTripID, testUserID).Return(&types.Participant{
		TripID: testTripID,
		UserID: testUserID,
		Role:   types.ParticipantRoleMember,
		Status: types.ParticipantStatusInvited,
	}, nil)

	guard := NewAccessGuard(tripStore)
	_, err := guard.Authorize(context.Background(), testTripID, testUserID, types.CapabilityRead)

	requireAppError(t, err, apperrors.ForbiddenError)
}

func TestAccessGuard_ViewerCannotContribute(t *testing.T) {
	tripStore := new(MockTripStore)
	tripStore.On("GetTrip", mock.Anything, testTripID).Return(testTrip(), nil)
	tripStore.On("GetParticipant", mock.Anything, testTripID, testUserID).Return(&types.Participant{
		TripID: testTripID,
		UserID: testUserID,
		Role:   types.ParticipantRoleViewer,
		Status: types.ParticipantStatusAccepted,
	}, nil)

	guard := NewAccessGuard(tripStore)

	_, err := guard.Authorize(context.Background(), testTripID, testUserID, types.CapabilityRead)
	assert.NoError(t, err, "viewers may read")

	_, err = guard.Authorize(context.Background(), testTripID, testUserID, types.CapabilityContribute)
	requireAppError(t, err, apperrors.ForbiddenError)
}

func TestAccessGuard_OnlyOwnerInvites(t *testing.T) {
	for _, tc := range []struct {
		role    types.ParticipantRole
		allowed bool
	}{
		{types.ParticipantRoleOwner, true},
		{types.ParticipantRoleAdmin, false},
		{types.ParticipantRoleMember, false},
		{types.ParticipantRoleViewer, false},
	} {
		tripStore := new(MockTripStore)
		tripStore.On("GetTrip", mock.Anything, testTripID).Return(testTrip(), nil)
		tripStore.On("GetParticipant", mock.Anything, testTripID, testUserID).Return(&types.Participant{
			TripID: testTripID,
			UserID: testUserID,
			Role:   tc.role,
			Status: types.ParticipantStatusAccepted,
		}, nil)

		guard := NewAccessGuard(tripStore)
		_, err := guard.Authorize(context.Background(), testTripID, testUserID, types.CapabilityInviteParticipant)

		if tc.allowed {
			assert.NoError(t, err, "role %s", tc.role)
		} else {
			requireAppError(t, err, apperrors.ForbiddenError)
		}
	}
}
