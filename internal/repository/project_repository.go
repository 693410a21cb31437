package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/internal/domain"
)

// ProjectTaskCounts aggregates task totals per project
type ProjectTaskCounts struct {
	ProjectID uuid.UUID `gorm:"column:project_id"`
	Total     int64     `gorm:"column:total"`
	Completed int64     `gorm:"column:completed"`
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindByIDWithCollaborators(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddCollaborator(ctx context.Context, projectID, userID uuid.UUID) error
	RemoveCollaborator(ctx context.Context, projectID, userID uuid.UUID) error
	IsCollaborator(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	CountTasksByProjects(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]ProjectTaskCounts, error)
}

// projectRepositoryImpl is the GORM implementation of ProjectRepository
type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

// Create creates a new project
func (r *projectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a project by ID with its owner preloaded
func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDWithCollaborators finds a project with owner and collaborator users preloaded
func (r *projectRepositoryImpl) FindByIDWithCollaborators(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Collaborators.User").
		First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindAccessibleByUser returns projects the user owns or collaborates on,
// newest first. The unique (project_id, user_id) pair keeps the join from
// producing duplicate rows.
func (r *projectRepositoryImpl) FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.db.WithContext(ctx).
		Joins("LEFT JOIN project_collaborators pc ON pc.project_id = projects.id AND pc.user_id = ?", userID).
		Where("projects.owner_id = ? OR pc.user_id IS NOT NULL", userID).
		Preload("Owner").
		Order("projects.created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateFields applies a partial update to a project
func (r *projectRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return err
	}
	return nil
}

// Delete deletes a project. Groups, tasks, comments and collaborator rows
// are removed by the database cascades.
func (r *projectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}

// AddCollaborator grants a user access to a project. Adding an existing
// collaborator is a no-op.
func (r *projectRepositoryImpl) AddCollaborator(ctx context.Context, projectID, userID uuid.UUID) error {
	collaborator := &domain.ProjectCollaborator{
		ProjectID: projectID,
		UserID:    userID,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(collaborator).Error; err != nil {
		return err
	}
	return nil
}

// RemoveCollaborator revokes a user's access to a project
func (r *projectRepositoryImpl) RemoveCollaborator(ctx context.Context, projectID, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&domain.ProjectCollaborator{}).Error; err != nil {
		return err
	}
	return nil
}

// IsCollaborator reports whether the user is a collaborator on the project
func (r *projectRepositoryImpl) IsCollaborator(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.ProjectCollaborator{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountTasksByProjects returns total and completed task counts per project
func (r *projectRepositoryImpl) CountTasksByProjects(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]ProjectTaskCounts, error) {
	counts := make(map[uuid.UUID]ProjectTaskCounts)
	if len(projectIDs) == 0 {
		return counts, nil
	}

	var rows []ProjectTaskCounts
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("project_id, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed", domain.TaskStatusCompleted).
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ProjectID] = row
	}
	return counts, nil
}
