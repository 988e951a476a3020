package models

import (
	"context"
	goerrors "errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/types"
)

const pollEventSource = "poll_model"

const defaultPollDuration = 24 * time.Hour

// PollModel runs group decision polls with single-choice, swappable votes.
type PollModel struct {
	store     store.PollStore
	guard     AccessVerifier
	publisher types.EventPublisher
	log       *zap.SugaredLogger
}

func NewPollModel(pollStore store.PollStore, guard AccessVerifier, publisher types.EventPublisher) *PollModel {
	return &PollModel{
		store:     pollStore,
		guard:     guard,
		publisher: publisher,
		log:       logger.GetLogger().Named("poll"),
	}
}

// CreatePoll opens a poll with at least two options. Options keep their
// submitted order.
func (m *PollModel) CreatePoll(ctx context.Context, tripID, userID string, req *types.PollCreate) (*types.PollResponse, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityContribute); err != nil {
		return nil, err
	}

	if err := validatePollCreate(req); err != nil {
		return nil, err
	}

	duration := defaultPollDuration
	if req.DurationMinutes != nil {
		duration = time.Duration(*req.DurationMinutes) * time.Minute
	}

	poll := &types.Poll{
		TripID:    tripID,
		Question:  req.Question,
		Status:    types.PollStatusActive,
		CreatedBy: userID,
		ExpiresAt: time.Now().Add(duration),
	}

	options := make([]*types.PollOption, len(req.Options))
	for i, text := range req.Options {
		options[i] = &types.PollOption{
			Text:     strings.TrimSpace(text),
			Position: i,
		}
	}

	pollID, err := m.store.CreatePollWithOptions(ctx, poll, options)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	response, err := m.buildPollResponse(ctx, tripID, pollID, userID)
	if err != nil {
		return nil, err
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypePollCreated, tripID, userID, response, pollEventSource)

	return response, nil
}

// CastVote records the caller's single choice. Voting again moves the existing
// vote to the new option; two votes by one user can never coexist.
func (m *PollModel) CastVote(ctx context.Context, tripID, pollID, userID string, req *types.CastVoteRequest) (*types.PollResponse, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityContribute); err != nil {
		return nil, err
	}

	poll, err := m.store.GetPoll(ctx, pollID, tripID)
	if err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("poll", pollID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	if poll.Status != types.PollStatusActive {
		return nil, errors.Conflict("poll is closed", "votes are only accepted on active polls")
	}
	if poll.IsExpired() {
		return nil, errors.Conflict("poll has expired", "voting ended at "+poll.ExpiresAt.Format(time.RFC3339))
	}

	options, err := m.store.ListPollOptions(ctx, pollID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	if !optionBelongsToPoll(options, req.OptionID) {
		return nil, errors.ValidationFailed("invalid option", "option does not belong to this poll")
	}

	if _, err := m.store.SwapVote(ctx, pollID, req.OptionID, userID); err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	response, err := m.buildPollResponse(ctx, tripID, pollID, userID)
	if err != nil {
		return nil, err
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypePollVoted, tripID, userID, response, pollEventSource)

	return response, nil
}

// GetPoll returns the poll with per-option tallies and the caller's own vote
// marked.
func (m *PollModel) GetPoll(ctx context.Context, tripID, pollID, userID string) (*types.PollResponse, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}
	return m.buildPollResponse(ctx, tripID, pollID, userID)
}

// ListTripPolls returns every poll on the trip with tallies.
func (m *PollModel) ListTripPolls(ctx context.Context, tripID, userID string) ([]types.PollResponse, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}

	polls, err := m.store.ListTripPolls(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	responses := make([]types.PollResponse, 0, len(polls))
	for _, poll := range polls {
		response, err := m.buildPollResponse(ctx, tripID, poll.ID, userID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}
	return responses, nil
}

func (m *PollModel) buildPollResponse(ctx context.Context, tripID, pollID, userID string) (*types.PollResponse, error) {
	poll, err := m.store.GetPoll(ctx, pollID, tripID)
	if err != nil {
		if goerrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("poll", pollID)
		}
		return nil, errors.NewDatabaseError(err)
	}

	options, err := m.store.ListPollOptions(ctx, pollID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	votes, err := m.store.ListVotesByPoll(ctx, pollID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	countsByOption := make(map[string]int, len(options))
	votedOption := ""
	for _, vote := range votes {
		countsByOption[vote.OptionID]++
		if vote.UserID == userID {
			votedOption = vote.OptionID
		}
	}

	response := &types.PollResponse{
		Poll:       *poll,
		Options:    make([]types.PollOptionWithVotes, len(options)),
		TotalVotes: len(votes),
	}
	for i, option := range options {
		response.Options[i] = types.PollOptionWithVotes{
			PollOption: *option,
			VoteCount:  countsByOption[option.ID],
			HasVoted:   option.ID == votedOption,
		}
	}
	return response, nil
}

func validatePollCreate(req *types.PollCreate) error {
	if strings.TrimSpace(req.Question) == "" {
		return errors.ValidationFailed("invalid poll", "question is required")
	}
	if len(req.Options) < 2 {
		return errors.ValidationFailed("invalid poll", "a poll needs at least two options")
	}
	seen := make(map[string]bool, len(req.Options))
	for _, text := range req.Options {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return errors.ValidationFailed("invalid poll", "options cannot be blank")
		}
		if seen[strings.ToLower(trimmed)] {
			return errors.ValidationFailed("invalid poll", "duplicate option: "+trimmed)
		}
		seen[strings.ToLower(trimmed)] = true
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return errors.ValidationFailed("invalid poll", "duration must be positive")
	}
	return nil
}

func optionBelongsToPoll(options []*types.PollOption, optionID string) bool {
	for _, option := range options {
		if option.ID == optionID {
			return true
		}
	}
	return false
}
