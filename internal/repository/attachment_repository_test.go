package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/internal/domain"
)

func TestAttachmentRepository_FindExpiredTemp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	uploader := seedUser(t, db, "Uploader", "up@example.com")

	past := time.Now().Add(-2 * time.Hour)
	future := time.Now().Add(2 * time.Hour)

	expired := &domain.Attachment{
		EntityType:  domain.EntityTypeTask,
		Status:      domain.AttachmentStatusTemp,
		FileName:    "expired.pdf",
		FileURL:     "attachments/expired.pdf",
		FileSize:    1024,
		ContentType: "application/pdf",
		UploadedBy:  uploader.ID,
		ExpiresAt:   &past,
	}
	require.NoError(t, db.Create(expired).Error)

	fresh := &domain.Attachment{
		EntityType:  domain.EntityTypeTask,
		Status:      domain.AttachmentStatusTemp,
		FileName:    "fresh.pdf",
		FileURL:     "attachments/fresh.pdf",
		FileSize:    1024,
		ContentType: "application/pdf",
		UploadedBy:  uploader.ID,
		ExpiresAt:   &future,
	}
	require.NoError(t, db.Create(fresh).Error)

	found, err := repo.FindExpiredTemp(ctx)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, expired.ID, found[0].ID)
}

func TestAttachmentRepository_Confirm(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	uploader := seedUser(t, db, "Uploader", "up@example.com")
	taskID := uuid.New()

	expiry := time.Now().Add(24 * time.Hour)
	temp := &domain.Attachment{
		EntityType:  domain.EntityTypeTask,
		Status:      domain.AttachmentStatusTemp,
		FileName:    "doc.pdf",
		FileURL:     "attachments/doc.pdf",
		FileSize:    2048,
		ContentType: "application/pdf",
		UploadedBy:  uploader.ID,
		ExpiresAt:   &expiry,
	}
	require.NoError(t, db.Create(temp).Error)

	require.NoError(t, repo.Confirm(ctx, []uuid.UUID{temp.ID}, taskID))

	confirmed, err := repo.FindByID(ctx, temp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttachmentStatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.EntityID)
	assert.Equal(t, taskID, *confirmed.EntityID)
	assert.Nil(t, confirmed.ExpiresAt)

	// A second confirm finds no TEMP rows and reports the mismatch.
	err = repo.Confirm(ctx, []uuid.UUID{temp.ID}, taskID)
	assert.Error(t, err)
}

func TestAttachmentRepository_Confirm_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Confirm(ctx, nil, uuid.New()))
}
