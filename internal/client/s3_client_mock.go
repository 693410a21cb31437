package client

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// MockStorageClient implements StorageClient for tests without AWS credentials
type MockStorageClient struct {
	Bucket string

	// Optional function overrides for custom test behavior
	GenerateKeyFunc     func(fileName string) string
	PresignUploadFunc   func(ctx context.Context, key, contentType string) (string, error)
	PresignDownloadFunc func(ctx context.Context, key string) (string, error)
	DeleteObjectFunc    func(ctx context.Context, key string) error

	// Deleted records the keys passed to DeleteObject
	Deleted []string
}

// NewMockStorageClient creates a new mock storage client
func NewMockStorageClient() *MockStorageClient {
	return &MockStorageClient{Bucket: "test-bucket"}
}

// GenerateKey builds a unique object key
func (m *MockStorageClient) GenerateKey(fileName string) string {
	if m.GenerateKeyFunc != nil {
		return m.GenerateKeyFunc(fileName)
	}
	now := time.Now()
	return fmt.Sprintf("attachments/%s/%s/%s%s",
		now.Format("2006"), now.Format("01"), uuid.New().String(), filepath.Ext(fileName))
}

// PresignUpload returns a stable fake upload URL
func (m *MockStorageClient) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	if m.PresignUploadFunc != nil {
		return m.PresignUploadFunc(ctx, key, contentType)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s?X-Amz-Signature=test", m.Bucket, key), nil
}

// PresignDownload returns a stable fake download URL
func (m *MockStorageClient) PresignDownload(ctx context.Context, key string) (string, error) {
	if m.PresignDownloadFunc != nil {
		return m.PresignDownloadFunc(ctx, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s?X-Amz-Signature=test", m.Bucket, key), nil
}

// DeleteObject records the deletion and succeeds
func (m *MockStorageClient) DeleteObject(ctx context.Context, key string) error {
	if m.DeleteObjectFunc != nil {
		return m.DeleteObjectFunc(ctx, key)
	}
	m.Deleted = append(m.Deleted, key)
	return nil
}

// Ensure MockStorageClient implements StorageClient
var _ StorageClient = (*MockStorageClient)(nil)
