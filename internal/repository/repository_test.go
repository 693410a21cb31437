package repository

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Project{},
		&domain.ProjectCollaborator{},
		&domain.TaskGroup{},
		&domain.Task{},
		&domain.TaskComment{},
		&domain.Attachment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         domain.UserRoleMember,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedProject(t *testing.T, db *gorm.DB, name string, ownerID uuid.UUID) *domain.Project {
	t.Helper()

	project := &domain.Project{
		Name:     name,
		Status:   domain.ProjectStatusActive,
		Priority: domain.PriorityMedium,
		OwnerID:  ownerID,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func seedGroup(t *testing.T, db *gorm.DB, projectID uuid.UUID, name string, position int) *domain.TaskGroup {
	t.Helper()

	group := &domain.TaskGroup{
		ProjectID: projectID,
		Name:      name,
		Color:     domain.DefaultGroupColor,
		Position:  position,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}
	return group
}

func seedTask(t *testing.T, db *gorm.DB, projectID uuid.UUID, groupID *uuid.UUID, title string, status domain.TaskStatus, createdBy uuid.UUID) *domain.Task {
	t.Helper()

	task := &domain.Task{
		ProjectID: projectID,
		GroupID:   groupID,
		Title:     title,
		Status:    status,
		Priority:  domain.PriorityMedium,
		CreatedBy: createdBy,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task
}
