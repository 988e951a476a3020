package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripweave/tripweave-backend/models"
	"github.com/tripweave/tripweave-backend/types"
)

// TaskHandler handles shared kanban task endpoints.
type TaskHandler struct {
	tasks *models.TaskModel
}

func NewTaskHandler(tasks *models.TaskModel) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTask handles POST /trips/:id/tasks.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.TaskCreate
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), tripID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListTasks handles GET /trips/:id/tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.ListTasks(c.Request.Context(), tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// UpdateTaskStatus handles PATCH /trips/:id/tasks/:taskId/status.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	var req types.TaskStatusUpdate
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c.Request.Context(), tripID, taskID, userID, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, task)
}
