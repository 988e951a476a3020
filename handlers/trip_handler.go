package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripweave/tripweave-backend/models"
	"github.com/tripweave/tripweave-backend/types"
)

// TripHandler handles the trip lifecycle and the full-snapshot read.
type TripHandler struct {
	trips      *models.TripModel
	expenses   *models.ExpenseModel
	polls      *models.PollModel
	tasks      *models.TaskModel
	messages   *models.MessageModel
	activities *models.ActivityModel
}

func NewTripHandler(
	trips *models.TripModel,
	expenses *models.ExpenseModel,
	polls *models.PollModel,
	tasks *models.TaskModel,
	messages *models.MessageModel,
	activities *models.ActivityModel,
) *TripHandler {
	return &TripHandler{
		trips:      trips,
		expenses:   expenses,
		polls:      polls,
		tasks:      tasks,
		messages:   messages,
		activities: activities,
	}
}

// CreateTrip handles POST /trips.
func (h *TripHandler) CreateTrip(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req types.TripCreate
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.trips.CreateTrip(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// ListTrips handles GET /trips.
func (h *TripHandler) ListTrips(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	trips, err := h.trips.ListUserTrips(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GetTrip handles GET /trips/:id.
func (h *TripHandler) GetTrip(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	trip, err := h.trips.GetTrip(c.Request.Context(), tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// GetTripSnapshot handles GET /trips/:id/snapshot. It serves the authoritative
// view clients load on (re)connect before merging bus events.
func (h *TripHandler) GetTripSnapshot(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	trip, err := h.trips.GetTrip(ctx, tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	participants, err := h.trips.ListParticipants(ctx, tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	expenses, err := h.expenses.ListExpenses(ctx, tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	polls, err := h.polls.ListTripPolls(ctx, tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	tasks, err := h.tasks.ListTasks(ctx, tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	messages, err := h.messages.ListMessages(ctx, tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	activities, err := h.activities.ListActivities(ctx, tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.TripSnapshot{
		Trip:         trip,
		Participants: participants,
		Expenses:     expenses,
		Polls:        polls,
		Tasks:        tasks,
		Messages:     messages,
		Activities:   activities,
	})
}

// UpdateTripStatus handles PATCH /trips/:id/status.
func (h *TripHandler) UpdateTripStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.TripStatusUpdate
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.trips.UpdateTripStatus(c.Request.Context(), tripID, userID, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, trip)
}
