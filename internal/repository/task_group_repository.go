package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// TaskGroupRepository defines the interface for task group data access
type TaskGroupRepository interface {
	Create(ctx context.Context, group *domain.TaskGroup) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TaskGroup, error)
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.TaskGroup, error)
	FindLowestPosition(ctx context.Context, projectID uuid.UUID) (*domain.TaskGroup, error)
	NextPosition(ctx context.Context, projectID uuid.UUID) (int, error)
	Update(ctx context.Context, group *domain.TaskGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// taskGroupRepositoryImpl is the GORM implementation of TaskGroupRepository
type taskGroupRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskGroupRepository creates a new instance of TaskGroupRepository
func NewTaskGroupRepository(db *gorm.DB) TaskGroupRepository {
	return &taskGroupRepositoryImpl{db: db}
}

// Create creates a new task group
func (r *taskGroupRepositoryImpl) Create(ctx context.Context, group *domain.TaskGroup) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a task group by ID
func (r *taskGroupRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.TaskGroup, error) {
	var group domain.TaskGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByProject returns a project's groups ordered by board position
func (r *taskGroupRepositoryImpl) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.TaskGroup, error) {
	var groups []*domain.TaskGroup
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// FindLowestPosition returns the project's first board column, or nil when
// the project has no groups yet.
func (r *taskGroupRepositoryImpl) FindLowestPosition(ctx context.Context, projectID uuid.UUID) (*domain.TaskGroup, error) {
	var group domain.TaskGroup
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC").
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// NextPosition returns the position for a newly appended group:
// max(position)+1, or 0 when the project has no groups.
func (r *taskGroupRepositoryImpl) NextPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).
		Model(&domain.TaskGroup{}).
		Where("project_id = ?", projectID).
		Select("MAX(position)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// Update saves a task group
func (r *taskGroupRepositoryImpl) Update(ctx context.Context, group *domain.TaskGroup) error {
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return err
	}
	return nil
}

// Delete deletes a task group. Task rows keep their data; the group_id
// foreign key is set to null by the database.
func (r *taskGroupRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.TaskGroup{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}
