package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripweave/tripweave-backend/models"
	"github.com/tripweave/tripweave-backend/types"
)

// InvitationHandler handles participant membership endpoints.
type InvitationHandler struct {
	trips *models.TripModel
}

func NewInvitationHandler(trips *models.TripModel) *InvitationHandler {
	return &InvitationHandler{trips: trips}
}

// ListParticipants handles GET /trips/:id/participants.
func (h *InvitationHandler) ListParticipants(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	participants, err := h.trips.ListParticipants(c.Request.Context(), tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

// InviteParticipant handles POST /trips/:id/participants.
func (h *InvitationHandler) InviteParticipant(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.InviteParticipantRequest
	if !bindJSON(c, &req) {
		return
	}

	participant, err := h.trips.InviteParticipant(c.Request.Context(), tripID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// RespondToInvitation handles POST /trips/:id/invitation/respond.
func (h *InvitationHandler) RespondToInvitation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.InvitationResponseRequest
	if !bindJSON(c, &req) {
		return
	}

	participant, err := h.trips.RespondToInvitation(c.Request.Context(), tripID, userID, req.Accept)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, participant)
}
