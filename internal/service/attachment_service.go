package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/client"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// tempAttachmentTTL is how long an unconfirmed upload may linger before
// the cleanup job removes it
const tempAttachmentTTL = 24 * time.Hour

// AttachmentService defines the interface for task file attachments
type AttachmentService interface {
	PresignUpload(ctx context.Context, userID uuid.UUID, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error)
	ListForTask(ctx context.Context, taskID, userID uuid.UUID) ([]dto.AttachmentResponse, error)
	Delete(ctx context.Context, attachmentID, userID uuid.UUID) error
	CleanupExpired(ctx context.Context) (int, error)
}

// attachmentServiceImpl is the implementation of AttachmentService
type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepository
	taskRepo       repository.TaskRepository
	projectRepo    repository.ProjectRepository
	storage        client.StorageClient
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	storage client.StorageClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
		projectRepo:    projectRepo,
		storage:        storage,
		metrics:        m,
		logger:         logger,
	}
}

// PresignUpload issues a presigned PUT URL and records a TEMP attachment.
// The attachment becomes CONFIRMED when a task create or update
// references its ID; otherwise the cleanup job removes it after expiry.
func (s *attachmentServiceImpl) PresignUpload(ctx context.Context, userID uuid.UUID, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error) {
	if s.storage == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Attachment storage is not configured", "")
	}
	key := s.storage.GenerateKey(req.FileName)

	start := time.Now()
	uploadURL, err := s.storage.PresignUpload(ctx, key, req.ContentType)
	s.metrics.RecordStorageRequest("presign_put", err, time.Since(start))
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to prepare upload", err.Error())
	}

	expiresAt := time.Now().Add(tempAttachmentTTL)
	attachment := &domain.Attachment{
		EntityType:  domain.EntityTypeTask,
		Status:      domain.AttachmentStatusTemp,
		FileName:    req.FileName,
		FileURL:     key,
		FileSize:    req.FileSize,
		ContentType: req.ContentType,
		UploadedBy:  userID,
		ExpiresAt:   &expiresAt,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record attachment", err.Error())
	}

	return &dto.PresignUploadResponse{
		AttachmentID: attachment.ID,
		UploadURL:    uploadURL,
		Key:          key,
		ExpiresAt:    expiresAt,
	}, nil
}

// ListForTask returns a task's confirmed attachments with presigned
// download URLs
func (s *attachmentServiceImpl) ListForTask(ctx context.Context, taskID, userID uuid.UUID) ([]dto.AttachmentResponse, error) {
	if err := s.requireTaskAccess(ctx, taskID, userID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindByEntity(ctx, domain.EntityTypeTask, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list attachments", err.Error())
	}

	responses := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		resp := dto.NewAttachmentResponse(attachment)
		if s.storage == nil {
			responses = append(responses, resp)
			continue
		}

		start := time.Now()
		url, err := s.storage.PresignDownload(ctx, attachment.FileURL)
		s.metrics.RecordStorageRequest("presign_get", err, time.Since(start))
		if err != nil {
			// The file listing is still useful without a link.
			s.logger.Warn("Failed to presign download",
				zap.String("attachment_id", attachment.ID.String()),
				zap.Error(err),
			)
		} else {
			resp.DownloadURL = url
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Delete removes an attachment from storage and the database. Allowed for
// the uploader and for the owner of the project the file is bound to.
func (s *attachmentServiceImpl) Delete(ctx context.Context, attachmentID, userID uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Attachment not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load attachment", err.Error())
	}

	if attachment.UploadedBy != userID {
		allowed, err := s.isProjectOwnerOfAttachment(ctx, attachment, userID)
		if err != nil {
			return err
		}
		if !allowed {
			return response.NewForbiddenError("You may not delete this attachment", "")
		}
	}

	if s.storage != nil {
		start := time.Now()
		err = s.storage.DeleteObject(ctx, attachment.FileURL)
		s.metrics.RecordStorageRequest("delete", err, time.Since(start))
		if err != nil {
			s.logger.Warn("Failed to delete object from storage",
				zap.String("key", attachment.FileURL),
				zap.Error(err),
			)
		}
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment", err.Error())
	}
	return nil
}

// CleanupExpired deletes expired TEMP attachments from storage and the
// database, returning how many were removed
func (s *attachmentServiceImpl) CleanupExpired(ctx context.Context) (int, error) {
	expired, err := s.attachmentRepo.FindExpiredTemp(ctx)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for _, attachment := range expired {
		if s.storage == nil {
			ids = append(ids, attachment.ID)
			continue
		}
		start := time.Now()
		err := s.storage.DeleteObject(ctx, attachment.FileURL)
		s.metrics.RecordStorageRequest("delete", err, time.Since(start))
		if err != nil {
			// Keep the row so the next run retries the object.
			s.logger.Warn("Failed to delete expired object, will retry",
				zap.String("key", attachment.FileURL),
				zap.Error(err),
			)
			continue
		}
		ids = append(ids, attachment.ID)
	}

	if err := s.attachmentRepo.DeleteBatch(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *attachmentServiceImpl) requireTaskAccess(ctx context.Context, taskID, userID uuid.UUID) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Task not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}

	project, err := s.projectRepo.FindByID(ctx, task.ProjectID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
	}
	if project.OwnerID == userID {
		return nil
	}

	isCollab, err := s.projectRepo.IsCollaborator(ctx, task.ProjectID, userID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check project access", err.Error())
	}
	if !isCollab {
		return response.NewForbiddenError("You do not have access to this task", "")
	}
	return nil
}

func (s *attachmentServiceImpl) isProjectOwnerOfAttachment(ctx context.Context, attachment *domain.Attachment, userID uuid.UUID) (bool, error) {
	if attachment.EntityID == nil {
		return false, nil
	}

	task, err := s.taskRepo.FindByID(ctx, *attachment.EntityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}

	project, err := s.projectRepo.FindByID(ctx, task.ProjectID)
	if err != nil {
		return false, response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
	}
	return project.OwnerID == userID, nil
}
