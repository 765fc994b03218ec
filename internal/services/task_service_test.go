package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/akrotov/task-manager/internal/models"
	"github.com/akrotov/task-manager/internal/repository"
)

type taskServiceEnv struct {
	service *TaskService
	db      *gorm.DB
	author  *models.User
	status  *models.Status
}

func setupTaskService(t *testing.T) *taskServiceEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Label{},
		&models.Task{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	author := &models.User{Username: "hpotter", PasswordHash: "x"}
	require.NoError(t, db.Create(author).Error)
	status := &models.Status{Name: "new"}
	require.NoError(t, db.Create(status).Error)

	service := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewStatusRepository(db),
		repository.NewLabelRepository(db),
		repository.NewUserRepository(db),
	)

	return &taskServiceEnv{service: service, db: db, author: author, status: status}
}

func TestCreateTask(t *testing.T) {
	env := setupTaskService(t)

	task, err := env.service.CreateTask(env.author.ID, TaskInput{
		Name:        "Defeat Voldemort",
		Description: "Before he returns",
		StatusID:    env.status.ID,
	})

	require.NoError(t, err)
	require.NotZero(t, task.ID)
	require.Equal(t, env.author.ID, task.AuthorID)
}

func TestCreateTask_DanglingStatus(t *testing.T) {
	env := setupTaskService(t)

	_, err := env.service.CreateTask(env.author.ID, TaskInput{
		Name:     "Defeat Voldemort",
		StatusID: 9999,
	})

	require.ErrorIs(t, err, ErrStatusNotFound)
}

func TestCreateTask_DanglingExecutor(t *testing.T) {
	env := setupTaskService(t)
	nobody := uint64(9999)

	_, err := env.service.CreateTask(env.author.ID, TaskInput{
		Name:       "Defeat Voldemort",
		StatusID:   env.status.ID,
		ExecutorID: &nobody,
	})

	require.ErrorIs(t, err, ErrExecutorNotFound)
}

func TestCreateTask_DanglingLabel(t *testing.T) {
	env := setupTaskService(t)

	_, err := env.service.CreateTask(env.author.ID, TaskInput{
		Name:     "Defeat Voldemort",
		StatusID: env.status.ID,
		LabelIDs: []uint64{9999},
	})

	require.ErrorIs(t, err, ErrLabelNotFound)
}

func TestUpdateTask_PreservesAuthor(t *testing.T) {
	env := setupTaskService(t)

	task, err := env.service.CreateTask(env.author.ID, TaskInput{
		Name:     "Defeat Voldemort",
		StatusID: env.status.ID,
	})
	require.NoError(t, err)

	err = env.service.UpdateTask(task, TaskInput{
		Name:     "Defeat Tom Riddle",
		StatusID: env.status.ID,
	})
	require.NoError(t, err)

	updated, err := env.service.GetTask(task.ID)
	require.NoError(t, err)
	require.Equal(t, "Defeat Tom Riddle", updated.Name)
	require.Equal(t, env.author.ID, updated.AuthorID)
}

func TestGetTask_NotFound(t *testing.T) {
	env := setupTaskService(t)

	_, err := env.service.GetTask(9999)
	require.ErrorIs(t, err, ErrTaskNotFound)
}
