package types

import "time"

// Message is immutable once created and ordered by CreatedAt within a trip.
type Message struct {
	ID        string    `json:"id"`
	TripID    string    `json:"tripId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessageCreate struct {
	Content string `json:"content" binding:"required,max=4000"`
}
