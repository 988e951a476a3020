package types

import "time"

// Activity is a dated itinerary entry within a trip.
type Activity struct {
	ID           string     `json:"id"`
	TripID       string     `json:"tripId"`
	Title        string     `json:"title"`
	Location     string     `json:"location,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	CreatedBy    string     `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type ActivityCreate struct {
	Title        string     `json:"title" binding:"required,max=200"`
	Location     string     `json:"location,omitempty" binding:"omitempty,max=200"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}
