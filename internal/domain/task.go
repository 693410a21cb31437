package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents a board column state. Any status may move to any
// other status; drag and drop on the board is a plain status update.
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "to_do"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
)

// DefaultGroupName is the name given to the lazily created first group
// of a project.
const DefaultGroupName = "Tareas"

// DefaultGroupColor is the color tag applied when none is supplied.
const DefaultGroupColor = "blue"

// TaskGroup represents a named, ordered column on a project's task board
type TaskGroup struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_task_groups_project_id" json:"project_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Color     string    `gorm:"type:varchar(20);not null;default:'blue'" json:"color"`
	Position  int       `gorm:"type:int;not null;default:0;index:idx_task_groups_position" json:"position"`
	Project   Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Tasks     []Task    `gorm:"foreignKey:GroupID" json:"tasks,omitempty"`
}

// Task represents a unit of work. A task with a non-nil ParentID is a
// subtask; only one level of nesting is read back by the board queries.
type Task struct {
	BaseModel
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_project_id" json:"project_id"`
	GroupID     *uuid.UUID `gorm:"type:uuid;index:idx_tasks_group_id" json:"group_id"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index:idx_tasks_parent_id" json:"parent_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'to_do';index:idx_tasks_status" json:"status"`
	Priority    Priority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time `gorm:"type:timestamp" json:"due_date,omitempty"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index:idx_tasks_assigned_to" json:"assigned_to"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_created_by" json:"created_by"`
	Project     Project    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Group       *TaskGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Parent      *Task      `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"parent,omitempty"`
	Assignee    *User      `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"assignee,omitempty"`
	Subtasks    []Task     `gorm:"foreignKey:ParentID" json:"subtasks,omitempty"`
	Comments    []TaskComment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for TaskGroup
func (TaskGroup) TableName() string {
	return "task_groups"
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
