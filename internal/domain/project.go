package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// Priority is shared by projects and tasks
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Project represents a top-level unit of work with a single owner
// and zero or more collaborators
type Project struct {
	BaseModel
	Name          string                 `gorm:"type:varchar(255);not null" json:"name"`
	Description   string                 `gorm:"type:text" json:"description"`
	Status        ProjectStatus          `gorm:"type:varchar(20);not null;default:'active';index:idx_projects_status" json:"status"`
	Priority      Priority               `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	StartDate     *time.Time             `gorm:"type:timestamp" json:"start_date,omitempty"`
	EndDate       *time.Time             `gorm:"type:timestamp" json:"end_date,omitempty"`
	OwnerID       uuid.UUID              `gorm:"type:uuid;not null;index:idx_projects_owner_id" json:"owner_id"`
	Owner         User                   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Collaborators []ProjectCollaborator  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"collaborators,omitempty"`
	TaskGroups    []TaskGroup            `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"task_groups,omitempty"`
	Tasks         []Task                 `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// ProjectCollaborator grants a non-owner user access to a project
type ProjectCollaborator struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_project_collaborators_project_id;uniqueIndex:uq_project_collaborators_project_user" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_project_collaborators_user_id;uniqueIndex:uq_project_collaborators_project_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// TableName specifies the table name for ProjectCollaborator
func (ProjectCollaborator) TableName() string {
	return "project_collaborators"
}
