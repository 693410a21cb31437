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

// ProjectService defines the interface for project business logic
type ProjectService interface {
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest, userID uuid.UUID) (*dto.ProjectResponse, error)
	ListProjects(ctx context.Context, userID, targetUserID uuid.UUID) ([]*dto.ProjectResponse, error)
	GetProject(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, projectID, userID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error
	AddCollaborator(ctx context.Context, projectID, userID, collaboratorID uuid.UUID) error
	RemoveCollaborator(ctx context.Context, projectID, userID, collaboratorID uuid.UUID) error
}

// projectServiceImpl is the implementation of ProjectService
type projectServiceImpl struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, m *metrics.Metrics, logger *zap.Logger) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		metrics:     m,
		logger:      logger,
	}
}

// findProject resolves existence before any access decision so that a
// missing project is reported as NOT_FOUND, never FORBIDDEN.
func (s *projectServiceImpl) findProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
	}
	return project, nil
}

// requireAccess returns the project when the user owns it or collaborates on it
func (s *projectServiceImpl) requireAccess(ctx context.Context, projectID, userID uuid.UUID) (*domain.Project, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID == userID {
		return project, nil
	}

	isCollab, err := s.projectRepo.IsCollaborator(ctx, projectID, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check project access", err.Error())
	}
	if !isCollab {
		return nil, response.NewForbiddenError("You do not have access to this project", "")
	}
	return project, nil
}

// requireOwner returns the project when the user is its owner
func (s *projectServiceImpl) requireOwner(ctx context.Context, projectID, userID uuid.UUID) (*domain.Project, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, response.NewForbiddenError("Only the project owner may do this", "")
	}
	return project, nil
}

// CreateProject creates a project owned by the caller. Collaborators are
// added best-effort: a failing entry is logged and skipped, the project
// itself is kept.
func (s *projectServiceImpl) CreateProject(ctx context.Context, req *dto.CreateProjectRequest, userID uuid.UUID) (*dto.ProjectResponse, error) {
	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
	}

	project := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatusActive,
		Priority:    priority,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		OwnerID:     userID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create project", err.Error())
	}

	for _, collaboratorID := range req.CollaboratorIDs {
		if collaboratorID == userID {
			continue
		}
		if _, err := s.userRepo.FindByID(ctx, collaboratorID); err != nil {
			s.logger.Warn("Skipping unknown collaborator",
				zap.String("project_id", project.ID.String()),
				zap.String("user_id", collaboratorID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := s.projectRepo.AddCollaborator(ctx, project.ID, collaboratorID); err != nil {
			s.logger.Warn("Failed to add collaborator",
				zap.String("project_id", project.ID.String()),
				zap.String("user_id", collaboratorID.String()),
				zap.Error(err),
			)
		}
	}

	s.metrics.IncrementProjectCreated()

	return s.GetProject(ctx, project.ID, userID)
}

// ListProjects returns the projects the target user owns or collaborates
// on, annotated with task counts. Ownership is reported relative to the
// requesting user.
func (s *projectServiceImpl) ListProjects(ctx context.Context, userID, targetUserID uuid.UUID) ([]*dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindAccessibleByUser(ctx, targetUserID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list projects", err.Error())
	}

	projectIDs := make([]uuid.UUID, 0, len(projects))
	for _, project := range projects {
		projectIDs = append(projectIDs, project.ID)
	}

	counts, err := s.projectRepo.CountTasksByProjects(ctx, projectIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count tasks", err.Error())
	}

	responses := make([]*dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, s.toProjectResponse(project, counts[project.ID], userID))
	}
	return responses, nil
}

// GetProject returns one project with collaborators and task counts
func (s *projectServiceImpl) GetProject(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error) {
	if _, err := s.requireAccess(ctx, projectID, userID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByIDWithCollaborators(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
	}

	counts, err := s.projectRepo.CountTasksByProjects(ctx, []uuid.UUID{projectID})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count tasks", err.Error())
	}

	resp := s.toProjectResponse(project, counts[projectID], userID)
	for _, collaborator := range project.Collaborators {
		resp.Collaborators = append(resp.Collaborators, dto.CollaboratorResponse{
			UserID: collaborator.UserID,
			Name:   collaborator.User.Name,
			Email:  collaborator.User.Email,
		})
	}
	return resp, nil
}

// UpdateProject applies a partial update. Owner only.
func (s *projectServiceImpl) UpdateProject(ctx context.Context, projectID, userID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if _, err := s.requireOwner(ctx, projectID, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.StartDate != nil {
		fields["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		fields["end_date"] = *req.EndDate
	}

	if err := s.projectRepo.UpdateFields(ctx, projectID, fields); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update project", err.Error())
	}

	return s.GetProject(ctx, projectID, userID)
}

// DeleteProject deletes a project and everything under it. Owner only.
func (s *projectServiceImpl) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	if _, err := s.requireOwner(ctx, projectID, userID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete project", err.Error())
	}

	s.logger.Info("Project deleted",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// AddCollaborator grants another user access. Owner only, idempotent.
func (s *projectServiceImpl) AddCollaborator(ctx context.Context, projectID, userID, collaboratorID uuid.UUID) error {
	project, err := s.requireOwner(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if collaboratorID == project.OwnerID {
		return response.NewValidationError("The owner is already a member of the project", "")
	}

	if _, err := s.userRepo.FindByID(ctx, collaboratorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("User not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
	}

	if err := s.projectRepo.AddCollaborator(ctx, projectID, collaboratorID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to add collaborator", err.Error())
	}
	return nil
}

// RemoveCollaborator revokes another user's access. Owner only.
func (s *projectServiceImpl) RemoveCollaborator(ctx context.Context, projectID, userID, collaboratorID uuid.UUID) error {
	if _, err := s.requireOwner(ctx, projectID, userID); err != nil {
		return err
	}

	if err := s.projectRepo.RemoveCollaborator(ctx, projectID, collaboratorID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove collaborator", err.Error())
	}
	return nil
}

func (s *projectServiceImpl) toProjectResponse(project *domain.Project, counts repository.ProjectTaskCounts, userID uuid.UUID) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:             project.ID,
		Name:           project.Name,
		Description:    project.Description,
		Status:         string(project.Status),
		Priority:       string(project.Priority),
		StartDate:      project.StartDate,
		EndDate:        project.EndDate,
		OwnerID:        project.OwnerID,
		OwnerName:      project.Owner.Name,
		IsOwner:        project.OwnerID == userID,
		TotalTasks:     counts.Total,
		CompletedTasks: counts.Completed,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}
