package dto

import (
	"time"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
)

// CreateGroupRequest represents the request to create a board column
type CreateGroupRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255" example:"In review"`
	Color string `json:"color" binding:"omitempty,max=20" example:"purple"`
}

// GroupResponse represents a board column with its top-level tasks
type GroupResponse struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID uuid.UUID      `json:"projectId"`
	Name      string         `json:"name"`
	Color     string         `json:"color"`
	Position  int            `json:"position"`
	Tasks     []TaskResponse `json:"tasks"`
}

// CreateTaskRequest represents the request to create a task.
// groupId is optional; the task lands in the project's first column,
// which is created on demand.
type CreateTaskRequest struct {
	ProjectID     uuid.UUID   `json:"projectId" binding:"required"`
	GroupID       *uuid.UUID  `json:"groupId,omitempty"`
	Title         string      `json:"title" binding:"required,min=1,max=255" example:"Draft landing page copy"`
	Description   string      `json:"description" binding:"max=5000"`
	Priority      string      `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	AssignedTo    *uuid.UUID  `json:"assignedTo,omitempty"`
	AttachmentIDs []uuid.UUID `json:"attachmentIds,omitempty" binding:"omitempty,dive,uuid"`
}

// CreateSubtaskRequest represents the request to create a subtask under a task
type CreateSubtaskRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Description string     `json:"description" binding:"max=5000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	AssignedTo  *uuid.UUID `json:"assignedTo,omitempty"`
}

// UpdateTaskRequest represents a partial task update.
// Only non-nil fields are applied.
type UpdateTaskRequest struct {
	Title         *string     `json:"title" binding:"omitempty,min=1,max=255"`
	Description   *string     `json:"description" binding:"omitempty,max=5000"`
	Status        *string     `json:"status" binding:"omitempty,oneof=to_do in_progress review completed"`
	Priority      *string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	AssignedTo    *uuid.UUID  `json:"assignedTo,omitempty"`
	GroupID       *uuid.UUID  `json:"groupId,omitempty"`
	AttachmentIDs []uuid.UUID `json:"attachmentIds,omitempty" binding:"omitempty,dive,uuid"`
}

// UpdateTaskStatusRequest moves a task to another board state
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=to_do in_progress review completed"`
}

// MoveTaskRequest moves a task to another board column
type MoveTaskRequest struct {
	GroupID uuid.UUID `json:"groupId" binding:"required"`
}

// TaskResponse represents a task with one level of subtasks
type TaskResponse struct {
	ID           uuid.UUID            `json:"id"`
	ProjectID    uuid.UUID            `json:"projectId"`
	GroupID      *uuid.UUID           `json:"groupId,omitempty"`
	ParentID     *uuid.UUID           `json:"parentId,omitempty"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Status       string               `json:"status" example:"to_do"`
	Priority     string               `json:"priority" example:"medium"`
	DueDate      *time.Time           `json:"dueDate,omitempty"`
	AssignedTo   *uuid.UUID           `json:"assignedTo,omitempty"`
	AssigneeName string               `json:"assigneeName,omitempty"`
	CreatedBy    uuid.UUID            `json:"createdBy"`
	Subtasks     []TaskResponse       `json:"subtasks,omitempty"`
	Comments     []CommentResponse    `json:"comments,omitempty"`
	Attachments  []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// NewTaskResponse converts a domain task, including preloaded subtasks
// and comments, to its response form
func NewTaskResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		GroupID:     task.GroupID,
		ParentID:    task.ParentID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		AssignedTo:  task.AssignedTo,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Assignee != nil {
		resp.AssigneeName = task.Assignee.Name
	}
	for i := range task.Subtasks {
		resp.Subtasks = append(resp.Subtasks, NewTaskResponse(&task.Subtasks[i]))
	}
	for i := range task.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(&task.Comments[i]))
	}
	return resp
}

// CreateCommentRequest represents the request to comment on a task
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentResponse represents a task comment
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"taskId"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCommentResponse converts a domain comment to its response form
func NewCommentResponse(comment *domain.TaskComment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		UserName:  comment.User.Name,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
