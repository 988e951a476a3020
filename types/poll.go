package types

import "time"

type PollStatus string

const (
	PollStatusActive PollStatus = "ACTIVE"
	PollStatusClosed PollStatus = "CLOSED"
)

type Poll struct {
	ID        string     `json:"id"`
	TripID    string     `json:"tripId"`
	Question  string     `json:"question"`
	Status    PollStatus `json:"status"`
	CreatedBy string     `json:"createdBy"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (p *Poll) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}

type PollOption struct {
	ID        string    `json:"id"`
	PollID    string    `json:"pollId"`
	Text      string    `json:"text"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// Vote records one user's choice in a poll. At most one row per (poll, user);
// a repeat vote moves the existing row to the new option.
type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"pollId"`
	OptionID  string    `json:"optionId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PollCreate struct {
	Question        string   `json:"question" binding:"required,max=500"`
	Options         []string `json:"options" binding:"required,min=2,max=20,dive,min=1,max=200"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
}

type CastVoteRequest struct {
	OptionID string `json:"optionId" binding:"required"`
}

type PollOptionWithVotes struct {
	PollOption
	VoteCount int  `json:"voteCount"`
	HasVoted  bool `json:"hasVoted"`
}

type PollResponse struct {
	Poll
	Options    []PollOptionWithVotes `json:"options"`
	TotalVotes int                   `json:"totalVotes"`
}
