package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

func allModels() []modelInfo {
	return []modelInfo{
		{&domain.User{}, "users"},
		{&domain.Project{}, "projects"},
		{&domain.ProjectCollaborator{}, "project_collaborators"},
		{&domain.TaskGroup{}, "task_groups"},
		{&domain.Task{}, "tasks"},
		{&domain.TaskComment{}, "task_comments"},
		{&domain.Attachment{}, "attachments"},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	models := make([]interface{}, 0, len(allModels()))
	for _, m := range allModels() {
		models = append(models, m.model)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// SafeAutoMigrate migrates one table at a time, logging whether each table
// already existed. Existing tables only receive schema additions; this is
// the repair path behind the fix-database endpoint.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	models := allModels()

	logger.Info("Starting safe auto-migration",
		zap.Int("total_models", len(models)),
	)

	for _, m := range models {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	logger.Info("Safe auto-migration completed",
		zap.Int("tables_migrated", len(models)),
	)

	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate up to maxRetries times
// with linear backoff.
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}

// RecreateTaskTables drops and re-creates the task-related tables.
// Destructive: all groups, tasks and comments are lost. Exposed only
// through the admin fix-database endpoint with recreate=true.
func RecreateTaskTables(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	// Drop in dependency order: comments reference tasks, tasks reference groups.
	drop := []modelInfo{
		{&domain.TaskComment{}, "task_comments"},
		{&domain.Task{}, "tasks"},
		{&domain.TaskGroup{}, "task_groups"},
	}

	for _, m := range drop {
		if !migrator.HasTable(m.model) {
			continue
		}
		if err := migrator.DropTable(m.model); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", m.tableName, err)
		}
		logger.Warn("Dropped table for recreation", zap.String("table", m.tableName))
	}

	if err := db.AutoMigrate(&domain.TaskGroup{}, &domain.Task{}, &domain.TaskComment{}); err != nil {
		return fmt.Errorf("failed to recreate task tables: %w", err)
	}

	logger.Info("Task tables recreated")
	return nil
}
