package types

import "time"

type TripStatus string

const (
	TripStatusPlanning  TripStatus = "PLANNING"
	TripStatusConfirmed TripStatus = "CONFIRMED"
	TripStatusOngoing   TripStatus = "ONGOING"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

type TripVisibility string

const (
	TripVisibilityPrivate          TripVisibility = "PRIVATE"
	TripVisibilityParticipantsOnly TripVisibility = "PARTICIPANTS_ONLY"
	TripVisibilityPublic           TripVisibility = "PUBLIC"
)

type Trip struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Destination string         `json:"destination,omitempty"`
	StartDate   *time.Time     `json:"startDate,omitempty"`
	EndDate     *time.Time     `json:"endDate,omitempty"`
	Status      TripStatus     `json:"status"`
	Visibility  TripVisibility `json:"visibility"`
	CreatedBy   string         `json:"createdBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// IsValidTransition checks whether a status change is allowed.
// Completed and cancelled are terminal.
func (ts TripStatus) IsValidTransition(next TripStatus) bool {
	transitions := map[TripStatus][]TripStatus{
		TripStatusPlanning:  {TripStatusConfirmed, TripStatusCancelled},
		TripStatusConfirmed: {TripStatusOngoing, TripStatusCancelled},
		TripStatusOngoing:   {TripStatusCompleted, TripStatusCancelled},
		TripStatusCompleted: {},
		TripStatusCancelled: {},
	}

	allowed, ok := transitions[ts]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

func (ts TripStatus) String() string {
	return string(ts)
}

func (ts TripStatus) IsValid() bool {
	switch ts {
	case TripStatusPlanning, TripStatusConfirmed, TripStatusOngoing,
		TripStatusCompleted, TripStatusCancelled:
		return true
	default:
		return false
	}
}

func (tv TripVisibility) IsValid() bool {
	switch tv {
	case TripVisibilityPrivate, TripVisibilityParticipantsOnly, TripVisibilityPublic:
		return true
	default:
		return false
	}
}

type TripCreate struct {
	Name        string         `json:"name" binding:"required,max=200"`
	Description string         `json:"description,omitempty" binding:"omitempty,max=2000"`
	Destination string         `json:"destination,omitempty" binding:"omitempty,max=200"`
	StartDate   *time.Time     `json:"startDate,omitempty"`
	EndDate     *time.Time     `json:"endDate,omitempty"`
	Visibility  TripVisibility `json:"visibility,omitempty"`
}

type TripStatusUpdate struct {
	Status TripStatus `json:"status" binding:"required"`
}
