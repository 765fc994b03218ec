package repository

import (
	"errors"

	"github.com/akrotov/task-manager/internal/models"
)

// ErrProtected is returned by Delete when the row is still referenced by
// at least one task. The row is left untouched; the check and the delete
// run in one transaction.
var ErrProtected = errors.New("repository: row is referenced by a task")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves all users in insertion order
	List() ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete removes a user unless a task still references them
	Delete(id uint64) error
}

// StatusRepository defines the interface for status data access
type StatusRepository interface {
	Create(status *models.Status) error
	FindByID(id uint64) (*models.Status, error)
	FindByName(name string) (*models.Status, error)
	List() ([]models.Status, error)
	Update(status *models.Status) error

	// Delete removes a status unless a task still references it
	Delete(id uint64) error
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	Create(label *models.Label) error
	FindByID(id uint64) (*models.Label, error)
	FindByName(name string) (*models.Label, error)
	FindByIDs(ids []uint64) ([]models.Label, error)
	List() ([]models.Label, error)
	Update(label *models.Label) error

	// Delete removes a label unless a task still carries it
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	StatusID   *uint64
	ExecutorID *uint64
	LabelID    *uint64
	AuthorID   *uint64
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task together with its label associations
	Create(task *models.Task) error

	// FindByID finds a task by ID with its relations preloaded
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task and replaces its labels
	Update(task *models.Task, labels []models.Label) error

	// Delete removes a task and its label associations
	Delete(id uint64) error
}
