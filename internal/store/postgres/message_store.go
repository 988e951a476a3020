package postgres

import (
	"context"

	"github.com/tripweave/tripweave-backend/internal/store"
	"github.com/tripweave/tripweave-backend/types"
)

// MessageStore implements store.MessageStore.
type MessageStore struct {
	db store.Querier
}

func NewMessageStore(db store.Querier) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) CreateMessage(ctx context.Context, message *types.Message) (string, error) {
	query := `
		INSERT INTO messages (trip_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := s.db.QueryRow(ctx, query,
		message.TripID,
		message.SenderID,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return "", err
	}
	return message.ID, nil
}

func (s *MessageStore) ListTripMessages(ctx context.Context, tripID string) ([]*types.Message, error) {
	query := `
		SELECT id, trip_id, sender_id, content, created_at
		FROM messages
		WHERE trip_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*types.Message
	for rows.Next() {
		m := &types.Message{}
		err := rows.Scan(&m.ID, &m.TripID, &m.SenderID, &m.Content, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
