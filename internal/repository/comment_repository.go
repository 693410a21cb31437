package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// CommentRepository defines the interface for task comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.TaskComment) error
	FindByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskComment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create creates a new comment
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.TaskComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

// FindByTask returns a task's comments in chronological order with authors preloaded
func (r *commentRepositoryImpl) FindByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskComment, error) {
	var comments []*domain.TaskComment
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete deletes a comment by ID
func (r *commentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.TaskComment{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}
