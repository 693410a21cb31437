package job

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/metrics"
)

func TestGaugeJob_Run(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Project{}, &domain.Task{}))

	user := &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: domain.UserRoleMember}
	require.NoError(t, db.Create(user).Error)

	project := &domain.Project{Name: "Website", Status: domain.ProjectStatusActive, Priority: domain.PriorityMedium, OwnerID: user.ID}
	require.NoError(t, db.Create(project).Error)

	for _, title := range []string{"one", "two"} {
		task := &domain.Task{ProjectID: project.ID, Title: title, Status: domain.TaskStatusToDo, Priority: domain.PriorityMedium, CreatedBy: user.ID}
		require.NoError(t, db.Create(task).Error)
	}

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	job := NewGaugeJob(db, m, zap.NewNop())

	job.Run()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UsersTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProjectsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksTotal))
}
