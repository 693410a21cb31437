package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// StatusCount is a count of rows grouped by status
type StatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

// PriorityCount is a count of rows grouped by priority
type PriorityCount struct {
	Priority string `gorm:"column:priority"`
	Count    int64  `gorm:"column:count"`
}

// ProjectTimelineRow carries the schedule fields of one project
type ProjectTimelineRow struct {
	ID        uuid.UUID  `gorm:"column:id"`
	Name      string     `gorm:"column:name"`
	StartDate *time.Time `gorm:"column:start_date"`
	EndDate   *time.Time `gorm:"column:end_date"`
}

// ProjectCompletionRow carries completed/pending task counts for one project
type ProjectCompletionRow struct {
	ProjectID uuid.UUID `gorm:"column:project_id"`
	Name      string    `gorm:"column:name"`
	Completed int64     `gorm:"column:completed"`
	Pending   int64     `gorm:"column:pending"`
}

// AssigneeCount is a task count attributed to one user
type AssigneeCount struct {
	UserID uuid.UUID `gorm:"column:user_id"`
	Name   string    `gorm:"column:name"`
	Count  int64     `gorm:"column:count"`
}

// CompletionSpan holds the timestamps needed to measure how long a
// completed task stayed open
type CompletionSpan struct {
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// StatsRepository defines the aggregate queries behind the statistics module.
// Every method takes the caller's accessible project IDs and an optional
// cutoff; a nil cutoff means no time filter.
type StatsRepository interface {
	AccessibleProjectIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ProjectsByStatus(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]StatusCount, error)
	ProjectsByPriority(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]PriorityCount, error)
	ProjectTimelines(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]ProjectTimelineRow, error)
	TasksByStatus(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]StatusCount, error)
	TasksByPriority(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]PriorityCount, error)
	ProjectCompletion(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]ProjectCompletionRow, error)
	CompletedTaskSpans(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]CompletionSpan, error)
	CompletedByAssignee(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]AssigneeCount, error)
	TasksByAssignee(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]AssigneeCount, error)
}

// statsRepositoryImpl is the GORM implementation of StatsRepository
type statsRepositoryImpl struct {
	db *gorm.DB
}

// NewStatsRepository creates a new instance of StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepositoryImpl{db: db}
}

// AccessibleProjectIDs returns the IDs of projects the user owns or
// collaborates on
func (r *statsRepositoryImpl) AccessibleProjectIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Joins("LEFT JOIN project_collaborators pc ON pc.project_id = projects.id AND pc.user_id = ?", userID).
		Where("projects.owner_id = ? OR pc.user_id IS NOT NULL", userID).
		Pluck("projects.id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// sinceScope binds the cutoff as a query parameter when one is set
func sinceScope(since *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if since == nil {
			return db
		}
		return db.Where("created_at >= ?", *since)
	}
}

// ProjectsByStatus counts the user's projects grouped by status
func (r *statsRepositoryImpl) ProjectsByStatus(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]StatusCount, error) {
	var rows []StatusCount
	if len(projectIDs) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Select("status, COUNT(*) AS count").
		Where("id IN ?", projectIDs).
		Scopes(sinceScope(since)).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ProjectsByPriority counts the user's projects grouped by priority
func (r *statsRepositoryImpl) ProjectsByPriority(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]PriorityCount, error) {
	var rows []PriorityCount
	if len(projectIDs) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Select("priority, COUNT(*) AS count").
		Where("id IN ?", projectIDs).
		Scopes(sinceScope(since)).
		Group("priority").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ProjectTimelines returns id, name and schedule of the user's projects
func (r *statsRepositoryImpl) ProjectTimelines(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]ProjectTimelineRow, error) {
	var rows []ProjectTimelineRow
	if len(projectIDs) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Select("id, name, start_date, end_date").
		Where("id IN ?", projectIDs).
		Scopes(sinceScope(since)).
		Order("created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TasksByStatus counts tasks in the user's projects grouped by status
func (r *statsRepositoryImpl) TasksByStatus(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]StatusCount, error) {
	var rows []StatusCount
	if len(projectIDs) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("status, COUNT(*) AS count").
		Where("project_id IN ?", projectIDs).
		Scopes(sinceScope(since)).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TasksByPriority counts tasks in the user's projects grouped by priority
func (r *statsRepositoryImpl) TasksByPriority(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]PriorityCount, error) {
	var rows []PriorityCount
	if len(projectIDs) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("priority, COUNT(*) AS count").
		Where("project_id IN ?", projectIDs).
		Scopes(sinceScope(since)).
		Group("priority").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ProjectCompletion returns completed/pending task counts per project,
// busiest projects first
func (r *statsRepositoryImpl) ProjectCompletion(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]ProjectCompletionRow, error) {
	var rows []ProjectCompletionRow
	if len(projectIDs) == 0 {
		return rows, nil
	}
	query := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("tasks.project_id, projects.name AS name, "+
			"SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END) AS completed, "+
			"SUM(CASE WHEN tasks.status != ? THEN 1 ELSE 0 END) AS pending",
			domain.TaskStatusCompleted, domain.TaskStatusCompleted).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.project_id IN ?", projectIDs).
		Group("tasks.project_id, projects.name").
		Order("COUNT(*) DESC").
		Limit(limit)
	if since != nil {
		query = query.Where("tasks.created_at >= ?", *since)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CompletedTaskSpans returns the created/updated timestamps of completed
// tasks. The average completion time is computed in the service layer.
func (r *statsRepositoryImpl) CompletedTaskSpans(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]CompletionSpan, error) {
	var rows []CompletionSpan
	if len(projectIDs) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("created_at, updated_at").
		Where("project_id IN ? AND status = ?", projectIDs, domain.TaskStatusCompleted).
		Scopes(sinceScope(since)).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CompletedByAssignee counts completed tasks per assignee, top performers first
func (r *statsRepositoryImpl) CompletedByAssignee(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]AssigneeCount, error) {
	return r.countByAssignee(ctx, projectIDs, since, limit, true)
}

// TasksByAssignee counts all tasks per assignee, heaviest load first
func (r *statsRepositoryImpl) TasksByAssignee(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]AssigneeCount, error) {
	return r.countByAssignee(ctx, projectIDs, since, limit, false)
}

func (r *statsRepositoryImpl) countByAssignee(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int, completedOnly bool) ([]AssigneeCount, error) {
	var rows []AssigneeCount
	if len(projectIDs) == 0 {
		return rows, nil
	}
	query := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("tasks.assigned_to AS user_id, users.name AS name, COUNT(*) AS count").
		Joins("JOIN users ON users.id = tasks.assigned_to").
		Where("tasks.project_id IN ? AND tasks.assigned_to IS NOT NULL", projectIDs).
		Group("tasks.assigned_to, users.name").
		Order("count DESC").
		Limit(limit)
	if completedOnly {
		query = query.Where("tasks.status = ?", domain.TaskStatusCompleted)
	}
	if since != nil {
		query = query.Where("tasks.created_at >= ?", *since)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
