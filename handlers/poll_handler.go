package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripweave/tripweave-backend/models"
	"github.com/tripweave/tripweave-backend/types"
)

// PollHandler handles group decision poll endpoints.
type PollHandler struct {
	polls *models.PollModel
}

func NewPollHandler(polls *models.PollModel) *PollHandler {
	return &PollHandler{polls: polls}
}

// CreatePoll handles POST /trips/:id/polls.
func (h *PollHandler) CreatePoll(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.PollCreate
	if !bindJSON(c, &req) {
		return
	}

	poll, err := h.polls.CreatePoll(c.Request.Context(), tripID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// ListPolls handles GET /trips/:id/polls.
func (h *PollHandler) ListPolls(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	polls, err := h.polls.ListTripPolls(c.Request.Context(), tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"polls": polls})
}

// GetPoll handles GET /trips/:id/polls/:pollId.
func (h *PollHandler) GetPoll(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pollID, ok := pathUUID(c, "pollId")
	if !ok {
		return
	}

	poll, err := h.polls.GetPoll(c.Request.Context(), tripID, pollID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, poll)
}

// CastVote handles POST /trips/:id/polls/:pollId/vote. Re-voting moves the
// caller's vote to the new option.
func (h *PollHandler) CastVote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pollID, ok := pathUUID(c, "pollId")
	if !ok {
		return
	}

	var req types.CastVoteRequest
	if !bindJSON(c, &req) {
		return
	}

	poll, err := h.polls.CastVote(c.Request.Context(), tripID, pollID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, poll)
}
