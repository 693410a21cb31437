package dto

import (
	"time"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
)

// PresignUploadRequest asks for a presigned upload URL for a task file
type PresignUploadRequest struct {
	FileName    string `json:"fileName" binding:"required,max=255" example:"design.pdf"`
	ContentType string `json:"contentType" binding:"required,max=100" example:"application/pdf"`
	FileSize    int64  `json:"fileSize" binding:"required,gt=0" example:"102400"`
}

// PresignUploadResponse carries the presigned PUT URL and the attachment
// record created for it. The attachment stays TEMP until a task references it.
type PresignUploadResponse struct {
	AttachmentID uuid.UUID `json:"attachmentId"`
	UploadURL    string    `json:"uploadUrl"`
	Key          string    `json:"key"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// AttachmentResponse represents a stored file with a presigned download URL
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"fileName"`
	FileSize    int64     `json:"fileSize"`
	ContentType string    `json:"contentType"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	UploadedBy  uuid.UUID `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewAttachmentResponse converts a domain attachment to its response form.
// The download URL is presigned separately by the service.
func NewAttachmentResponse(attachment *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          attachment.ID,
		FileName:    attachment.FileName,
		FileSize:    attachment.FileSize,
		ContentType: attachment.ContentType,
		UploadedBy:  attachment.UploadedBy,
		CreatedAt:   attachment.CreatedAt,
	}
}
