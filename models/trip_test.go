package models

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/types"
)

const testOtherUserID = "33333333-3333-3333-3333-333333333333"

func TestCreateTrip_CreatorBecomesAcceptedOwner(t *testing.T) {
	tripStore := new(MockTripStore)
	pub := new(MockPublisher)

	tripStore.On("CreateTripWithOwner", mock.Anything,
		mock.MatchedBy(func(trip *types.Trip) bool {
			return trip.Status == types.TripStatusPlanning && trip.CreatedBy == testUserID
		}),
		mock.MatchedBy(func(p *types.Participant) bool {
			return p.Role == types.ParticipantRoleOwner &&
				p.Status == types.ParticipantStatusAccepted &&
				p.UserID == testUserID
		})).Return(testTripID, nil)
	tripStore.On("GetTrip", mock.Anything, testTripID).Return(testTrip(), nil)

	pub.On("Publish", mock.Anything, types.TripChannel(testTripID), mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, types.UserChannel(testUserID), mock.Anything).Return(nil)

	model := NewTripModel(tripStore, &allowAllGuard{}, pub)
	trip, err := model.CreateTrip(context.Background(), testUserID, &types.TripCreate{Name: "Lisbon"})

	require.NoError(t, err)
	assert.Equal(t, testTripID, trip.ID)
	tripStore.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreateTrip_PublishFailureDoesNotFailCreate(t *testing.T) {
	tripStore := new(MockTripStore)
	pub := new(MockPublisher)

	tripStore.On("CreateTripWithOwner", mock.Anything, mock.Anything, mock.Anything).Return(testTripID, nil)
	tripStore.On("GetTrip", mock.Anything, testTripID).Return(testTrip(), nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	model := NewTripModel(tripStore, &allowAllGuard{}, pub)
	trip, err := model.CreateTrip(context.Background(), testUserID, &types.TripCreate{Name: "Lisbon"})

	require.NoError(t, err, "a bus failure must never surface as a create failure")
	assert.NotNil(t, trip)
}

func TestCreateTrip_OwnerEnrollmentFailureFailsCreate(t *testing.T) {
	tripStore := new(MockTripStore)
	pub := new(MockPublisher)

	tripStore.On("CreateTripWithOwner", mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	model := NewTripModel(tripStore, &allowAllGuard{}, pub)
	_, err := model.CreateTrip(context.Background(), testUserID, &types.TripCreate{Name: "Lisbon"})

	requireAppError(t, err, apperrors.DatabaseError)
	tripStore.AssertNotCalled(t, "GetTrip", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTripStatus_TransitionMatrix(t *testing.T) {
	cases := []struct {
		from    types.TripStatus
		to      types.TripStatus
		allowed bool
	}{
		{types.TripStatusPlanning, types.TripStatusConfirmed, true},
		{types.TripStatusPlanning, types.TripStatusCancelled, true},
		{types.TripStatusPlanning, types.TripStatusOngoing, false},
		{types.TripStatusConfirmed, types.TripStatusOngoing, true},
		{types.TripStatusOngoing, types.TripStatusCompleted, true},
		{types.TripStatusCompleted, types.TripStatusOngoing, false},
		{types.TripStatusCancelled, types.TripStatusPlanning, false},
	}

	for _, tc := range cases {
		tripStore := new(MockTripStore)
		pub := new(MockPublisher)

		current := testTrip()
		current.Status = tc.from
		tripStore.On("GetTrip", mock.Anything, testTripID).Return(current, nil)

		if tc.allowed {
			updated := testTrip()
			updated.Status = tc.to
			tripStore.On("UpdateTripStatus", mock.Anything, testTripID, tc.to).Return(updated, nil)
			pub.On("Publish", mock.Anything, types.TripChannel(testTripID), mock.Anything).Return(nil)
		}

		model := NewTripModel(tripStore, &allowAllGuard{}, pub)
		trip, err := model.UpdateTripStatus(context.Background(), testTripID, testUserID, tc.to)

		if tc.allowed {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, trip.Status)
		} else {
			requireAppError(t, err, apperrors.InvalidStatusTransitionError)
		}
	}
}

func TestInviteParticipant_DuplicateIsConflict(t *testing.T) {
	tripStore := new(MockTripStore)
	pub := new(MockPublisher)

	tripStore.On("AddParticipant", mock.Anything, mock.Anything).
		Return("", &pgconn.PgError{Code: "23505"})

	model := NewTripModel(tripStore, &allowAllGuard{}, pub)
	_, err := model.InviteParticipant(context.Background(), testTripID, testUserID,
		&types.InviteParticipantRequest{UserID: testOtherUserID})

	requireAppError(t, err, apperrors.ConflictError)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestInviteParticipant_OwnerRoleRejected(t *testing.T) {
	model := NewTripModel(new(MockTripStore), &allowAllGuard{}, new(MockPublisher))
	_, err := model.InviteParticipant(context.Background(), testTripID, testUserID,
		&types.InviteParticipantRequest{UserID: testOtherUserID, Role: types.ParticipantRoleOwner})

	requireAppError(t, err, apperrors.ValidationError)
}

func TestInviteParticipant_PublishesToBothChannels(t *testing.T) {
	tripStore := new(MockTripStore)
	pub := new(MockPublisher)

	invited := &types.Participant{
		ID:     "participant-id",
		TripID: testTripID,
		UserID: testOtherUserID,
		Role:   types.ParticipantRoleMember,
		Status: types.ParticipantStatusInvited,
	}
	tripStore.On("AddParticipant", mock.Anything, mock.Anything).Return("participant-id", nil)
	tripStore.On("GetParticipant", mock.Anything, testTripID, testOtherUserID).Return(invited, nil)
	pub.On("Publish", mock.Anything, types.TripChannel(testTripID), mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, types.UserChannel(testOtherUserID), mock.Anything).Return(nil)

	model := NewTripModel(tripStore, &allowAllGuard{}, pub)
	participant, err := model.InviteParticipant(context.Background(), testTripID, testUserID,
		&types.InviteParticipantRequest{UserID: testOtherUserID})

	require.NoError(t, err)
	assert.Equal(t, types.ParticipantStatusInvited, participant.Status)
	pub.AssertExpectations(t)
}

func TestRespondToInvitation(t *testing.T) {
	t.Run("accept moves invited to accepted", func(t *testing.T) {
		tripStore := new(MockTripStore)
		pub := new(MockPublisher)

		tripStore.On("GetParticipant", mock.Anything, testTripID, testUserID).Return(&types.Participant{
			TripID: testTripID, UserID: testUserID,
			Role: types.ParticipantRoleMember, Status: types.ParticipantStatusInvited,
		}, nil)
		tripStore.On("UpdateParticipantStatus", mock.Anything, testTripID, testUserID,
			types.ParticipantStatusAccepted).Return(&types.Participant{
			TripID: testTripID, UserID: testUserID,
			Role: types.ParticipantRoleMember, Status: types.ParticipantStatusAccepted,
		}, nil)
		pub.On("Publish", mock.Anything, types.TripChannel(testTripID), mock.Anything).Return(nil)

		model := NewTripModel(tripStore, &allowAllGuard{}, pub)
		participant, err := model.RespondToInvitation(context.Background(), testTripID, testUserID, true)

		require.NoError(t, err)
		assert.Equal(t, types.ParticipantStatusAccepted, participant.Status)
	})

	t.Run("responding twice is a conflict", func(t *testing.T) {
		tripStore := new(MockTripStore)
		tripStore.On("GetParticipant", mock.Anything, testTripID, testUserID).Return(&types.Participant{
			TripID: testTripID, UserID: testUserID,
			Role: types.ParticipantRoleMember, Status: types.ParticipantStatusAccepted,
		}, nil)

		model := NewTripModel(tripStore, &allowAllGuard{}, new(MockPublisher))
		_, err := model.RespondToInvitation(context.Background(), testTripID, testUserID, false)

		requireAppError(t, err, apperrors.ConflictError)
	})
}
