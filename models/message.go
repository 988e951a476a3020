package models

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/types"
)

const messageEventSource = "message_model"

// MessageModel handles the trip's chat stream. Messages are append-only.
type MessageModel struct {
	store     store.MessageStore
	guard     AccessVerifier
	publisher types.EventPublisher
	log       *zap.SugaredLogger
}

func NewMessageModel(messageStore store.MessageStore, guard AccessVerifier, publisher types.EventPublisher) *MessageModel {
	return &MessageModel{
		store:     messageStore,
		guard:     guard,
		publisher: publisher,
		log:       logger.GetLogger().Named("message"),
	}
}

// SendMessage appends a message to the trip chat.
func (m *MessageModel) SendMessage(ctx context.Context, tripID, userID string, req *types.MessageCreate) (*types.Message, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityContribute); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.ValidationFailed("invalid message", "content is required")
	}

	message := &types.Message{
		TripID:   tripID,
		SenderID: userID,
		Content:  req.Content,
	}

	if _, err := m.store.CreateMessage(ctx, message); err != nil {
		return nil, errors.NewDatabaseError(err)
	}

	publishEntity(ctx, m.publisher, m.log, types.TripChannel(tripID),
		types.EventTypeMessageCreated, tripID, userID, message, messageEventSource)

	return message, nil
}

// ListMessages returns the trip chat ordered oldest first.
func (m *MessageModel) ListMessages(ctx context.Context, tripID, userID string) ([]*types.Message, error) {
	if _, err := m.guard.Authorize(ctx, tripID, userID, types.CapabilityRead); err != nil {
		return nil, err
	}

	messages, err := m.store.ListTripMessages(ctx, tripID)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return messages, nil
}
