package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	FindAllFunc     func(ctx context.Context) ([]*domain.User, error)
	FindByIDsFunc   func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	UpdateFunc      func(ctx context.Context, user *domain.User) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// MockProjectRepository is a mock implementation of repository.ProjectRepository
type MockProjectRepository struct {
	CreateFunc                    func(ctx context.Context, project *domain.Project) error
	FindByIDFunc                  func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindByIDWithCollaboratorsFunc func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindAccessibleByUserFunc      func(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)
	UpdateFieldsFunc              func(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteFunc                    func(ctx context.Context, id uuid.UUID) error
	AddCollaboratorFunc           func(ctx context.Context, projectID, userID uuid.UUID) error
	RemoveCollaboratorFunc        func(ctx context.Context, projectID, userID uuid.UUID) error
	IsCollaboratorFunc            func(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	CountTasksByProjectsFunc      func(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]repository.ProjectTaskCounts, error)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindByIDWithCollaborators(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDWithCollaboratorsFunc != nil {
		return m.FindByIDWithCollaboratorsFunc(ctx, id)
	}
	return m.FindByID(ctx, id)
}

func (m *MockProjectRepository) FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	if m.FindAccessibleByUserFunc != nil {
		return m.FindAccessibleByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockProjectRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProjectRepository) AddCollaborator(ctx context.Context, projectID, userID uuid.UUID) error {
	if m.AddCollaboratorFunc != nil {
		return m.AddCollaboratorFunc(ctx, projectID, userID)
	}
	return nil
}

func (m *MockProjectRepository) RemoveCollaborator(ctx context.Context, projectID, userID uuid.UUID) error {
	if m.RemoveCollaboratorFunc != nil {
		return m.RemoveCollaboratorFunc(ctx, projectID, userID)
	}
	return nil
}

func (m *MockProjectRepository) IsCollaborator(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	if m.IsCollaboratorFunc != nil {
		return m.IsCollaboratorFunc(ctx, projectID, userID)
	}
	return false, nil
}

func (m *MockProjectRepository) CountTasksByProjects(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]repository.ProjectTaskCounts, error) {
	if m.CountTasksByProjectsFunc != nil {
		return m.CountTasksByProjectsFunc(ctx, projectIDs)
	}
	return map[uuid.UUID]repository.ProjectTaskCounts{}, nil
}

// MockTaskRepository is a mock implementation of repository.TaskRepository
type MockTaskRepository struct {
	CreateFunc             func(ctx context.Context, task *domain.Task) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByIDWithDetailsFunc func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindTopLevelByGroupFunc func(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error)
	FindByProjectFunc      func(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	UpdateFieldsFunc       func(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDWithDetailsFunc != nil {
		return m.FindByIDWithDetailsFunc(ctx, id)
	}
	return m.FindByID(ctx, id)
}

func (m *MockTaskRepository) FindTopLevelByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error) {
	if m.FindTopLevelByGroupFunc != nil {
		return m.FindTopLevelByGroupFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByProjectFunc != nil {
		return m.FindByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockTaskRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockTaskGroupRepository is a mock implementation of repository.TaskGroupRepository
type MockTaskGroupRepository struct {
	CreateFunc             func(ctx context.Context, group *domain.TaskGroup) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.TaskGroup, error)
	FindByProjectFunc      func(ctx context.Context, projectID uuid.UUID) ([]*domain.TaskGroup, error)
	FindLowestPositionFunc func(ctx context.Context, projectID uuid.UUID) (*domain.TaskGroup, error)
	NextPositionFunc       func(ctx context.Context, projectID uuid.UUID) (int, error)
	UpdateFunc             func(ctx context.Context, group *domain.TaskGroup) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
}

func (m *MockTaskGroupRepository) Create(ctx context.Context, group *domain.TaskGroup) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, group)
	}
	return nil
}

func (m *MockTaskGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TaskGroup, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskGroupRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.TaskGroup, error) {
	if m.FindByProjectFunc != nil {
		return m.FindByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockTaskGroupRepository) FindLowestPosition(ctx context.Context, projectID uuid.UUID) (*domain.TaskGroup, error) {
	if m.FindLowestPositionFunc != nil {
		return m.FindLowestPositionFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockTaskGroupRepository) NextPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	if m.NextPositionFunc != nil {
		return m.NextPositionFunc(ctx, projectID)
	}
	return 0, nil
}

func (m *MockTaskGroupRepository) Update(ctx context.Context, group *domain.TaskGroup) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, group)
	}
	return nil
}

func (m *MockTaskGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	CreateFunc     func(ctx context.Context, comment *domain.TaskComment) error
	FindByTaskFunc func(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskComment, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.TaskComment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskComment, error) {
	if m.FindByTaskFunc != nil {
		return m.FindByTaskFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	AccessibleProjectIDsFunc func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ProjectsByStatusFunc     func(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.StatusCount, error)
	ProjectsByPriorityFunc   func(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.PriorityCount, error)
	ProjectTimelinesFunc     func(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.ProjectTimelineRow, error)
	TasksByStatusFunc        func(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.StatusCount, error)
	TasksByPriorityFunc      func(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.PriorityCount, error)
	ProjectCompletionFunc    func(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]repository.ProjectCompletionRow, error)
	CompletedTaskSpansFunc   func(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.CompletionSpan, error)
	CompletedByAssigneeFunc  func(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]repository.AssigneeCount, error)
	TasksByAssigneeFunc      func(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]repository.AssigneeCount, error)
}

func (m *MockStatsRepository) AccessibleProjectIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.AccessibleProjectIDsFunc != nil {
		return m.AccessibleProjectIDsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockStatsRepository) ProjectsByStatus(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.StatusCount, error) {
	if m.ProjectsByStatusFunc != nil {
		return m.ProjectsByStatusFunc(ctx, projectIDs, since)
	}
	return nil, nil
}

func (m *MockStatsRepository) ProjectsByPriority(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.PriorityCount, error) {
	if m.ProjectsByPriorityFunc != nil {
		return m.ProjectsByPriorityFunc(ctx, projectIDs, since)
	}
	return nil, nil
}

func (m *MockStatsRepository) ProjectTimelines(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.ProjectTimelineRow, error) {
	if m.ProjectTimelinesFunc != nil {
		return m.ProjectTimelinesFunc(ctx, projectIDs, since)
	}
	return nil, nil
}

func (m *MockStatsRepository) TasksByStatus(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.StatusCount, error) {
	if m.TasksByStatusFunc != nil {
		return m.TasksByStatusFunc(ctx, projectIDs, since)
	}
	return nil, nil
}

func (m *MockStatsRepository) TasksByPriority(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.PriorityCount, error) {
	if m.TasksByPriorityFunc != nil {
		return m.TasksByPriorityFunc(ctx, projectIDs, since)
	}
	return nil, nil
}

func (m *MockStatsRepository) ProjectCompletion(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]repository.ProjectCompletionRow, error) {
	if m.ProjectCompletionFunc != nil {
		return m.ProjectCompletionFunc(ctx, projectIDs, since, limit)
	}
	return nil, nil
}

func (m *MockStatsRepository) CompletedTaskSpans(ctx context.Context, projectIDs []uuid.UUID, since *time.Time) ([]repository.CompletionSpan, error) {
	if m.CompletedTaskSpansFunc != nil {
		return m.CompletedTaskSpansFunc(ctx, projectIDs, since)
	}
	return nil, nil
}

func (m *MockStatsRepository) CompletedByAssignee(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]repository.AssigneeCount, error) {
	if m.CompletedByAssigneeFunc != nil {
		return m.CompletedByAssigneeFunc(ctx, projectIDs, since, limit)
	}
	return nil, nil
}

func (m *MockStatsRepository) TasksByAssignee(ctx context.Context, projectIDs []uuid.UUID, since *time.Time, limit int) ([]repository.AssigneeCount, error) {
	if m.TasksByAssigneeFunc != nil {
		return m.TasksByAssigneeFunc(ctx, projectIDs, since, limit)
	}
	return nil, nil
}

// MockAttachmentRepository is a mock implementation of repository.AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc          func(ctx context.Context, attachment *domain.Attachment) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByEntityFunc    func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]*domain.Attachment, error)
	FindByIDsFunc       func(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error)
	ConfirmFunc         func(ctx context.Context, attachmentIDs []uuid.UUID, entityID uuid.UUID) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	FindExpiredTempFunc func(ctx context.Context) ([]*domain.Attachment, error)
	DeleteBatchFunc     func(ctx context.Context, attachmentIDs []uuid.UUID) error
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByEntityFunc != nil {
		return m.FindByEntityFunc(ctx, entityType, entityID)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) Confirm(ctx context.Context, attachmentIDs []uuid.UUID, entityID uuid.UUID) error {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, attachmentIDs, entityID)
	}
	return nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) FindExpiredTemp(ctx context.Context) ([]*domain.Attachment, error) {
	if m.FindExpiredTempFunc != nil {
		return m.FindExpiredTempFunc(ctx)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) DeleteBatch(ctx context.Context, attachmentIDs []uuid.UUID) error {
	if m.DeleteBatchFunc != nil {
		return m.DeleteBatchFunc(ctx, attachmentIDs)
	}
	return nil
}
