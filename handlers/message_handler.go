package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripweave/tripweave-backend/models"
	"github.com/tripweave/tripweave-backend/types"
)

// MessageHandler handles trip chat endpoints.
type MessageHandler struct {
	messages *models.MessageModel
}

func NewMessageHandler(messages *models.MessageModel) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// SendMessage handles POST /trips/:id/messages.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.MessageCreate
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.messages.SendMessage(c.Request.Context(), tripID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// ListMessages handles GET /trips/:id/messages.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	messages, err := h.messages.ListMessages(c.Request.Context(), tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
