package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest represents the request to create a new project
// @Description collaboratorIds is optional; collaborators that cannot be
// @Description added are skipped without failing the whole request
type CreateProjectRequest struct {
	Name            string      `json:"name" binding:"required,min=2,max=255" example:"Website redesign"`
	Description     string      `json:"description" binding:"max=2000" example:"Full redesign of the marketing site"`
	Priority        string      `json:"priority" binding:"omitempty,oneof=low medium high urgent" example:"medium"`
	StartDate       *time.Time  `json:"startDate,omitempty" example:"2026-01-01T00:00:00Z"`
	EndDate         *time.Time  `json:"endDate,omitempty" example:"2026-03-31T23:59:59Z"`
	CollaboratorIDs []uuid.UUID `json:"collaboratorIds,omitempty" binding:"omitempty,dive,uuid"`
}

// UpdateProjectRequest represents a partial project update.
// Only non-nil fields are applied.
type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Status      *string    `json:"status" binding:"omitempty,oneof=active completed on_hold cancelled"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// AddCollaboratorRequest identifies the user to grant access to
type AddCollaboratorRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

// CollaboratorResponse represents a project collaborator
type CollaboratorResponse struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}

// ProjectResponse represents a project in list and detail views
type ProjectResponse struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Status         string                 `json:"status" example:"active"`
	Priority       string                 `json:"priority" example:"medium"`
	StartDate      *time.Time             `json:"startDate,omitempty"`
	EndDate        *time.Time             `json:"endDate,omitempty"`
	OwnerID        uuid.UUID              `json:"ownerId"`
	OwnerName      string                 `json:"ownerName"`
	IsOwner        bool                   `json:"isOwner"`
	TotalTasks     int64                  `json:"totalTasks"`
	CompletedTasks int64                  `json:"completedTasks"`
	Collaborators  []CollaboratorResponse `json:"collaborators,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}
