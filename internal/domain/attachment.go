package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityType represents the type of entity an attachment is associated with
type EntityType string

const (
	EntityTypeTask EntityType = "TASK"
)

// AttachmentStatus represents the status of an attachment
type AttachmentStatus string

const (
	AttachmentStatusTemp      AttachmentStatus = "TEMP"
	AttachmentStatusConfirmed AttachmentStatus = "CONFIRMED"
)

// Attachment represents a file uploaded for a task. A row starts in TEMP
// status when the upload URL is issued and becomes CONFIRMED once the task
// references it. EntityID has no foreign key: TEMP rows are not yet bound.
type Attachment struct {
	BaseModel
	EntityType  EntityType       `gorm:"type:varchar(50);not null;index:idx_attachments_entity,priority:1" json:"entity_type"`
	EntityID    *uuid.UUID       `gorm:"type:uuid;index:idx_attachments_entity,priority:2" json:"entity_id"`
	Status      AttachmentStatus `gorm:"type:varchar(20);not null;default:'TEMP';index:idx_attachments_status" json:"status"`
	FileName    string           `gorm:"type:varchar(255);not null" json:"file_name"`
	FileURL     string           `gorm:"type:text;not null" json:"file_url"` // S3 key, not a full URL
	FileSize    int64            `gorm:"not null" json:"file_size"`
	ContentType string           `gorm:"type:varchar(100);not null" json:"content_type"`
	UploadedBy  uuid.UUID        `gorm:"type:uuid;not null;index:idx_attachments_uploaded_by" json:"uploaded_by"`
	ExpiresAt   *time.Time       `gorm:"type:timestamp;index:idx_attachments_expires_at" json:"expires_at"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
