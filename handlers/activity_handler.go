package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripweave/tripweave-backend/models"
	"github.com/tripweave/tripweave-backend/types"
)

// ActivityHandler handles itinerary endpoints.
type ActivityHandler struct {
	activities *models.ActivityModel
}

func NewActivityHandler(activities *models.ActivityModel) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// CreateActivity handles POST /trips/:id/activities.
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.ActivityCreate
	if !bindJSON(c, &req) {
		return
	}

	activity, err := h.activities.CreateActivity(c.Request.Context(), tripID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// ListActivities handles GET /trips/:id/activities.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	activities, err := h.activities.ListActivities(c.Request.Context(), tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
