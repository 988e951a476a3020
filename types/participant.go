package types

import "time"

type ParticipantRole string

const (
	ParticipantRoleOwner  ParticipantRole = "OWNER"
	ParticipantRoleAdmin  ParticipantRole = "ADMIN"
	ParticipantRoleMember ParticipantRole = "MEMBER"
	ParticipantRoleViewer ParticipantRole = "VIEWER"
)

type ParticipantStatus string

const (
	ParticipantStatusInvited  ParticipantStatus = "INVITED"
	ParticipantStatusAccepted ParticipantStatus = "ACCEPTED"
	ParticipantStatusDeclined ParticipantStatus = "DECLINED"
	ParticipantStatusRemoved  ParticipantStatus = "REMOVED"
)

// Participant ties a user to a trip. One row per (trip, user), enforced by a
// uniqueness constraint in storage.
type Participant struct {
	ID        string            `json:"id"`
	TripID    string            `json:"tripId"`
	UserID    string            `json:"userId"`
	Role      ParticipantRole   `json:"role"`
	Status    ParticipantStatus `json:"status"`
	InvitedBy *string           `json:"invitedBy,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Capability is the access level an operation requires of the caller.
type Capability string

const (
	// CapabilityRead covers reading a trip and its sub-resources.
	CapabilityRead Capability = "read"
	// CapabilityContribute covers creating sub-resources and voting.
	CapabilityContribute Capability = "contribute"
	// CapabilityManage covers trip status transitions.
	CapabilityManage Capability = "manage"
	// CapabilityInviteParticipant covers inviting new participants.
	CapabilityInviteParticipant Capability = "invite_participant"
)

// Allows reports whether the role grants the capability. Status checks
// (accepted vs invited) are the access guard's job, not the role's.
func (r ParticipantRole) Allows(c Capability) bool {
	switch c {
	case CapabilityRead:
		return r == ParticipantRoleOwner || r == ParticipantRoleAdmin ||
			r == ParticipantRoleMember || r == ParticipantRoleViewer
	case CapabilityContribute:
		return r == ParticipantRoleOwner || r == ParticipantRoleAdmin ||
			r == ParticipantRoleMember
	case CapabilityManage:
		return r == ParticipantRoleOwner || r == ParticipantRoleAdmin
	case CapabilityInviteParticipant:
		return r == ParticipantRoleOwner
	default:
		return false
	}
}

func (r ParticipantRole) IsValid() bool {
	switch r {
	case ParticipantRoleOwner, ParticipantRoleAdmin,
		ParticipantRoleMember, ParticipantRoleViewer:
		return true
	default:
		return false
	}
}

type InviteParticipantRequest struct {
	UserID string          `json:"userId" binding:"required"`
	Role   ParticipantRole `json:"role,omitempty"`
}

type InvitationResponseRequest struct {
	Accept bool `json:"accept"`
}
