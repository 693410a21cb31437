package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/internal/domain"
)

func TestTaskRepository_FindTopLevelByGroup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	project := seedProject(t, db, "Project", owner.ID)
	group := seedGroup(t, db, project.ID, "Tareas", 0)

	parent := seedTask(t, db, project.ID, &group.ID, "Parent", domain.TaskStatusToDo, owner.ID)

	subtask := &domain.Task{
		ProjectID: project.ID,
		GroupID:   &group.ID,
		ParentID:  &parent.ID,
		Title:     "Subtask",
		Status:    domain.TaskStatusToDo,
		Priority:  domain.PriorityMedium,
		CreatedBy: owner.ID,
	}
	require.NoError(t, db.Create(subtask).Error)

	tasks, err := repo.FindTopLevelByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, parent.ID, tasks[0].ID)
	require.Len(t, tasks[0].Subtasks, 1)
	assert.Equal(t, subtask.ID, tasks[0].Subtasks[0].ID)
}

func TestTaskRepository_UpdateFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	project := seedProject(t, db, "Project", owner.ID)
	task := seedTask(t, db, project.ID, nil, "Task", domain.TaskStatusToDo, owner.ID)

	err := repo.UpdateFields(ctx, task.ID, map[string]interface{}{
		"status":   domain.TaskStatusCompleted,
		"priority": domain.PriorityHigh,
	})
	require.NoError(t, err)

	updated, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
}

func TestTaskRepository_UpdateFields_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	project := seedProject(t, db, "Project", owner.ID)
	task := seedTask(t, db, project.ID, nil, "Task", domain.TaskStatusToDo, owner.ID)

	require.NoError(t, repo.UpdateFields(ctx, task.ID, map[string]interface{}{}))

	unchanged, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusToDo, unchanged.Status)
}

func TestTaskRepository_FindByIDWithDetails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", "owner@example.com")
	project := seedProject(t, db, "Project", owner.ID)
	task := seedTask(t, db, project.ID, nil, "Task", domain.TaskStatusToDo, owner.ID)

	comment := &domain.TaskComment{
		TaskID:  task.ID,
		UserID:  owner.ID,
		Content: "first",
	}
	require.NoError(t, db.Create(comment).Error)

	loaded, err := repo.FindByIDWithDetails(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 1)
	assert.Equal(t, "first", loaded.Comments[0].Content)
	assert.Equal(t, "Owner", loaded.Comments[0].User.Name)
}
