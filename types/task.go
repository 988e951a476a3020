package types

import "time"

type TaskStatus string

const (
	TaskStatusTodo  TaskStatus = "TODO"
	TaskStatusDoing TaskStatus = "DOING"
	TaskStatusDone  TaskStatus = "DONE"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusDoing, TaskStatusDone:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string     `json:"id"`
	TripID      string     `json:"tripId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskCreate struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

type TaskStatusUpdate struct {
	Status TaskStatus `json:"status" binding:"required"`
}
