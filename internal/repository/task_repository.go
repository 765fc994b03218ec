package repository

import (
	"gorm.io/gorm"

	"github.com/akrotov/task-manager/internal/database"
	"github.com/akrotov/task-manager/internal/models"
	"github.com/akrotov/task-manager/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task. Labels set on the model are inserted into the
// join table in the same statement batch.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with its relations preloaded
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Preload("Status").
		Preload("Author").
		Preload("Executor").
		Preload("Labels").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{})

	if filter.StatusID != nil {
		query = query.Where("tasks.status_id = ?", *filter.StatusID)
	}
	if filter.ExecutorID != nil {
		query = query.Where("tasks.executor_id = ?", *filter.ExecutorID)
	}
	if filter.AuthorID != nil {
		query = query.Where("tasks.author_id = ?", *filter.AuthorID)
	}
	if filter.LabelID != nil {
		labelSubQuery := r.db.Table("task_labels").
			Select("1").
			Where("task_labels.task_id = tasks.id").
			Where("task_labels.label_id = ?", *filter.LabelID)
		query = query.Where("EXISTS (?)", labelSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.id")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var tasks []models.Task
	err := listQuery.
		Preload("Status").
		Preload("Author").
		Preload("Executor").
		Preload("Labels").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update persists changes to a task and replaces its label set.
func (r *GormTaskRepository) Update(task *models.Task, labels []models.Label) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Labels").Save(task).Error; err != nil {
			return err
		}

		return tx.Model(task).Association("Labels").Replace(labels)
	})
}

// Delete removes a task and its label associations.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_labels WHERE task_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
