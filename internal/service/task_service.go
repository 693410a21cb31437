package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// TaskService defines the interface for board, task and comment business logic
type TaskService interface {
	CreateGroup(ctx context.Context, projectID, userID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context, projectID, userID uuid.UUID) ([]*dto.GroupResponse, error)
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	CreateSubtask(ctx context.Context, parentID, userID uuid.UUID, req *dto.CreateSubtaskRequest) (*dto.TaskResponse, error)
	GetTask(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, taskID, userID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	UpdateStatus(ctx context.Context, taskID, userID uuid.UUID, status string) (*dto.TaskResponse, error)
	MoveToGroup(ctx context.Context, taskID, userID, groupID uuid.UUID) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error
	AddComment(ctx context.Context, taskID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, taskID, userID uuid.UUID) ([]dto.CommentResponse, error)
}

// taskServiceImpl is the implementation of TaskService
type taskServiceImpl struct {
	taskRepo       repository.TaskRepository
	groupRepo      repository.TaskGroupRepository
	commentRepo    repository.CommentRepository
	projectRepo    repository.ProjectRepository
	userRepo       repository.UserRepository
	attachmentRepo repository.AttachmentRepository
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	groupRepo repository.TaskGroupRepository,
	commentRepo repository.CommentRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	attachmentRepo repository.AttachmentRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:       taskRepo,
		groupRepo:      groupRepo,
		commentRepo:    commentRepo,
		projectRepo:    projectRepo,
		userRepo:       userRepo,
		attachmentRepo: attachmentRepo,
		metrics:        m,
		logger:         logger,
	}
}

// requireProjectAccess checks existence first, then membership.
// Collaborators and the owner have the same task permissions.
func (s *taskServiceImpl) requireProjectAccess(ctx context.Context, projectID, userID uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Project not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
	}
	if project.OwnerID == userID {
		return nil
	}

	isCollab, err := s.projectRepo.IsCollaborator(ctx, projectID, userID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check project access", err.Error())
	}
	if !isCollab {
		return response.NewForbiddenError("You do not have access to this project", "")
	}
	return nil
}

// findTask resolves a task, mapping a missing row to NOT_FOUND
func (s *taskServiceImpl) findTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Task not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}
	return task, nil
}

// CreateGroup appends a new board column to the project
func (s *taskServiceImpl) CreateGroup(ctx context.Context, projectID, userID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	if err := s.requireProjectAccess(ctx, projectID, userID); err != nil {
		return nil, err
	}

	position, err := s.groupRepo.NextPosition(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create group", err.Error())
	}

	color := req.Color
	if color == "" {
		color = domain.DefaultGroupColor
	}

	group := &domain.TaskGroup{
		ProjectID: projectID,
		Name:      req.Name,
		Color:     color,
		Position:  position,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create group", err.Error())
	}

	return &dto.GroupResponse{
		ID:        group.ID,
		ProjectID: group.ProjectID,
		Name:      group.Name,
		Color:     group.Color,
		Position:  group.Position,
		Tasks:     []dto.TaskResponse{},
	}, nil
}

// ensureDefaultGroup creates the project's first column when none exists
func (s *taskServiceImpl) ensureDefaultGroup(ctx context.Context, projectID uuid.UUID) (*domain.TaskGroup, error) {
	group := &domain.TaskGroup{
		ProjectID: projectID,
		Name:      domain.DefaultGroupName,
		Color:     domain.DefaultGroupColor,
		Position:  0,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create default group", err.Error())
	}
	s.logger.Info("Created default task group", zap.String("project_id", projectID.String()))
	return group, nil
}

// ListGroups returns the project's board: groups in position order, each
// with its top-level tasks and one level of subtasks. A project without
// groups gets its default column created on first read.
func (s *taskServiceImpl) ListGroups(ctx context.Context, projectID, userID uuid.UUID) ([]*dto.GroupResponse, error) {
	if err := s.requireProjectAccess(ctx, projectID, userID); err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list groups", err.Error())
	}

	if len(groups) == 0 {
		created, err := s.ensureDefaultGroup(ctx, projectID)
		if err != nil {
			return nil, err
		}
		groups = []*domain.TaskGroup{created}
	}

	responses := make([]*dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		tasks, err := s.taskRepo.FindTopLevelByGroup(ctx, group.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tasks", err.Error())
		}

		taskResponses := make([]dto.TaskResponse, 0, len(tasks))
		for _, task := range tasks {
			taskResponses = append(taskResponses, dto.NewTaskResponse(task))
		}

		responses = append(responses, &dto.GroupResponse{
			ID:        group.ID,
			ProjectID: group.ProjectID,
			Name:      group.Name,
			Color:     group.Color,
			Position:  group.Position,
			Tasks:     taskResponses,
		})
	}
	return responses, nil
}

// resolveGroup picks the column for a new task: the requested group when
// given, otherwise the project's first column, created on demand.
func (s *taskServiceImpl) resolveGroup(ctx context.Context, projectID uuid.UUID, requested *uuid.UUID) (uuid.UUID, error) {
	if requested != nil {
		group, err := s.groupRepo.FindByID(ctx, *requested)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, response.NewNotFoundError("Task group not found", "")
			}
			return uuid.Nil, response.NewAppError(response.ErrCodeInternal, "Failed to load group", err.Error())
		}
		if group.ProjectID != projectID {
			return uuid.Nil, response.NewValidationError("Task group belongs to another project", "")
		}
		return group.ID, nil
	}

	group, err := s.groupRepo.FindLowestPosition(ctx, projectID)
	if err != nil {
		return uuid.Nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve group", err.Error())
	}
	if group == nil {
		created, err := s.ensureDefaultGroup(ctx, projectID)
		if err != nil {
			return uuid.Nil, err
		}
		return created.ID, nil
	}
	return group.ID, nil
}

// CreateTask creates a top-level task
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := s.requireProjectAccess(ctx, req.ProjectID, userID); err != nil {
		return nil, err
	}

	groupID, err := s.resolveGroup(ctx, req.ProjectID, req.GroupID)
	if err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
	}

	task := &domain.Task{
		ProjectID:   req.ProjectID,
		GroupID:     &groupID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatusToDo,
		Priority:    priority,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   userID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	s.confirmAttachments(ctx, req.AttachmentIDs, task.ID)
	s.metrics.IncrementTaskCreated()

	return s.GetTask(ctx, task.ID, userID)
}

// CreateSubtask creates a task nested under a parent. The subtask inherits
// the parent's project and column.
func (s *taskServiceImpl) CreateSubtask(ctx context.Context, parentID, userID uuid.UUID, req *dto.CreateSubtaskRequest) (*dto.TaskResponse, error) {
	parent, err := s.findTask(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProjectAccess(ctx, parent.ProjectID, userID); err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
	}

	subtask := &domain.Task{
		ProjectID:   parent.ProjectID,
		GroupID:     parent.GroupID,
		ParentID:    &parent.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatusToDo,
		Priority:    priority,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   userID,
	}
	if err := s.taskRepo.Create(ctx, subtask); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create subtask", err.Error())
	}

	s.metrics.IncrementTaskCreated()

	return s.GetTask(ctx, subtask.ID, userID)
}

// GetTask returns one task with subtasks and comments
func (s *taskServiceImpl) GetTask(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProjectAccess(ctx, task.ProjectID, userID); err != nil {
		return nil, err
	}

	loaded, err := s.taskRepo.FindByIDWithDetails(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}

	resp := dto.NewTaskResponse(loaded)
	return &resp, nil
}

// UpdateTask applies a partial update. Owner and collaborators alike.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, taskID, userID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProjectAccess(ctx, task.ProjectID, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
		if domain.TaskStatus(*req.Status) == domain.TaskStatusCompleted && task.Status != domain.TaskStatusCompleted {
			s.metrics.IncrementTaskCompleted()
		}
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if req.AssignedTo != nil {
		fields["assigned_to"] = *req.AssignedTo
	}
	if req.GroupID != nil {
		groupID, err := s.resolveGroup(ctx, task.ProjectID, req.GroupID)
		if err != nil {
			return nil, err
		}
		fields["group_id"] = groupID
	}

	if err := s.taskRepo.UpdateFields(ctx, taskID, fields); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	s.confirmAttachments(ctx, req.AttachmentIDs, taskID)

	return s.GetTask(ctx, taskID, userID)
}

// UpdateStatus moves a task to another board state
func (s *taskServiceImpl) UpdateStatus(ctx context.Context, taskID, userID uuid.UUID, status string) (*dto.TaskResponse, error) {
	return s.UpdateTask(ctx, taskID, userID, &dto.UpdateTaskRequest{Status: &status})
}

// MoveToGroup moves a task to another board column
func (s *taskServiceImpl) MoveToGroup(ctx context.Context, taskID, userID, groupID uuid.UUID) (*dto.TaskResponse, error) {
	return s.UpdateTask(ctx, taskID, userID, &dto.UpdateTaskRequest{GroupID: &groupID})
}

// DeleteTask deletes a task. Subtasks and comments follow via cascade.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.requireProjectAccess(ctx, task.ProjectID, userID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete task", err.Error())
	}
	return nil
}

// AddComment records a comment on a task
func (s *taskServiceImpl) AddComment(ctx context.Context, taskID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProjectAccess(ctx, task.ProjectID, userID); err != nil {
		return nil, err
	}

	comment := &domain.TaskComment{
		TaskID:  taskID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add comment", err.Error())
	}

	resp := dto.NewCommentResponse(comment)
	if author, err := s.userRepo.FindByID(ctx, userID); err == nil {
		resp.UserName = author.Name
	}
	return &resp, nil
}

// ListComments returns a task's comments in chronological order
func (s *taskServiceImpl) ListComments(ctx context.Context, taskID, userID uuid.UUID) ([]dto.CommentResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProjectAccess(ctx, task.ProjectID, userID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByTask(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list comments", err.Error())
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.NewCommentResponse(comment))
	}
	return responses, nil
}

// confirmAttachments binds uploaded TEMP files to a task. Failures are
// logged and tolerated so a task write never fails over its attachments.
func (s *taskServiceImpl) confirmAttachments(ctx context.Context, attachmentIDs []uuid.UUID, taskID uuid.UUID) {
	if len(attachmentIDs) == 0 {
		return
	}
	if err := s.attachmentRepo.Confirm(ctx, attachmentIDs, taskID); err != nil {
		s.logger.Warn("Failed to confirm attachments",
			zap.String("task_id", taskID.String()),
			zap.Int("attachment_count", len(attachmentIDs)),
			zap.Error(err),
		)
	}
}
