package models

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

const testPollID = "33333333-3333-3333-3333-333333333333"

func activePoll() *types.Poll {
	return &types.Poll{
		ID:        testPollID,
		TripID:    testTripID,
		Question:  "Where to eat?",
		Status:    types.PollStatusActive,
		CreatedBy: testUserID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func twoOptions() []*types.PollOption {
	return []*types.PollOption{
		{ID: "option-1", PollID: testPollID, Text: "Ramen", Position: 0},
		{ID: "option-2", PollID: testPollID, Text: "Tapas", Position: 1},
	}
}

func TestCreatePoll_Validation(t *testing.T) {
	pollStore := new(MockPollStore)
	model := NewPollModel(pollStore, &allowAllGuard{}, nil)

	cases := []struct {
		name string
		req  *types.PollCreate
	}{
		{"blank question", &types.PollCreate{Question: "  ", Options: []string{"a", "b"}}},
		{"single option", &types.PollCreate{Question: "Where?", Options: []string{"a"}}},
		{"blank option", &types.PollCreate{Question: "Where?", Options: []string{"a", "  "}}},
		{"duplicate option", &types.PollCreate{Question: "Where?", Options: []string{"Ramen", "ramen"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.CreatePoll(context.Background(), testTripID, testUserID, tc.req)
			requireAppError(t, err, errors.ValidationError)
		})
	}
	pollStore.AssertNotCalled(t, "CreatePollWithOptions", mock.Anything, mock.Anything, mock.Anything)
}

func TestCastVote_MovesExistingVote(t *testing.T) {
	pollStore := new(MockPollStore)
	publisher := new(MockPublisher)
	model := NewPollModel(pollStore, &allowAllGuard{}, publisher)

	pollStore.On("GetPoll", mock.Anything, testPollID, testTripID).Return(activePoll(), nil)
	pollStore.On("ListPollOptions", mock.Anything, testPollID).Return(twoOptions(), nil)
	pollStore.On("SwapVote", mock.Anything, testPollID, "option-2", testUserID).
		Return(&types.Vote{ID: "vote-1", PollID: testPollID, OptionID: "option-2", UserID: testUserID}, nil)
	pollStore.On("ListVotesByPoll", mock.Anything, testPollID).Return([]*types.Vote{
		{ID: "vote-1", PollID: testPollID, OptionID: "option-2", UserID: testUserID},
	}, nil)
	publisher.On("Publish", mock.Anything, types.TripChannel(testTripID), mock.MatchedBy(func(e types.Event) bool {
		return e.Type == types.EventTypePollVoted
	})).Return(nil)

	response, err := model.CastVote(context.Background(), testTripID, testPollID, testUserID,
		&types.CastVoteRequest{OptionID: "option-2"})

	require.NoError(t, err)
	assert.Equal(t, 1, response.TotalVotes, "the vote moved, it did not multiply")
	assert.True(t, response.Options[1].HasVoted)
	assert.False(t, response.Options[0].HasVoted)
	publisher.AssertExpectations(t)
}

func TestCastVote_ClosedPollIsConflict(t *testing.T) {
	pollStore := new(MockPollStore)
	model := NewPollModel(pollStore, &allowAllGuard{}, nil)

	closed := activePoll()
	closed.Status = types.PollStatusClosed
	pollStore.On("GetPoll", mock.Anything, testPollID, testTripID).Return(closed, nil)

	_, err := model.CastVote(context.Background(), testTripID, testPollID, testUserID,
		&types.CastVoteRequest{OptionID: "option-1"})

	requireAppError(t, err, errors.ConflictError)
	pollStore.AssertNotCalled(t, "SwapVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCastVote_ExpiredPollIsConflict(t *testing.T) {
	pollStore := new(MockPollStore)
	model := NewPollModel(pollStore, &allowAllGuard{}, nil)

	expired := activePoll()
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	pollStore.On("GetPoll", mock.Anything, testPollID, testTripID).Return(expired, nil)

	_, err := model.CastVote(context.Background(), testTripID, testPollID, testUserID,
		&types.CastVoteRequest{OptionID: "option-1"})

	requireAppError(t, err, errors.ConflictError)
}

func TestCastVote_OptionFromAnotherPoll(t *testing.T) {
	pollStore := new(MockPollStore)
	model := NewPollModel(pollStore, &allowAllGuard{}, nil)

	pollStore.On("GetPoll", mock.Anything, testPollID, testTripID).Return(activePoll(), nil)
	pollStore.On("ListPollOptions", mock.Anything, testPollID).Return(twoOptions(), nil)

	_, err := model.CastVote(context.Background(), testTripID, testPollID, testUserID,
		&types.CastVoteRequest{OptionID: "option-elsewhere"})

	requireAppError(t, err, errors.ValidationError)
	pollStore.AssertNotCalled(t, "SwapVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCastVote_MissingPollReadsAsAbsent(t *testing.T) {
	pollStore := new(MockPollStore)
	model := NewPollModel(pollStore, &allowAllGuard{}, nil)

	pollStore.On("GetPoll", mock.Anything, testPollID, testTripID).Return(nil, store.ErrNotFound)

	_, err := model.CastVote(context.Background(), testTripID, testPollID, testUserID,
		&types.CastVoteRequest{OptionID: "option-1"})

	requireAppError(t, err, errors.NotFoundError)
}
