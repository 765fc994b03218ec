package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/akrotov/task-manager/internal/models"
	"github.com/akrotov/task-manager/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrStatusNotFound   = errors.New("status does not exist")
	ErrExecutorNotFound = errors.New("executor does not exist")
	ErrLabelNotFound    = errors.New("one or more labels do not exist")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo   repository.TaskRepository
	statusRepo repository.StatusRepository
	labelRepo  repository.LabelRepository
	userRepo   repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	statusRepo repository.StatusRepository,
	labelRepo repository.LabelRepository,
	userRepo repository.UserRepository,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		statusRepo: statusRepo,
		labelRepo:  labelRepo,
		userRepo:   userRepo,
	}
}

// TaskInput represents the validated task form. AuthorID comes from the
// session identity, never from the form.
type TaskInput struct {
	Name        string
	Description string
	StatusID    uint64
	ExecutorID  *uint64
	LabelIDs    []uint64
}

// resolveReferences checks that every referenced row exists and loads
// the label set.
func (s *TaskService) resolveReferences(input TaskInput) ([]models.Label, error) {
	if _, err := s.statusRepo.FindByID(input.StatusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to check status: %w", err)
	}

	if input.ExecutorID != nil {
		if _, err := s.userRepo.FindByID(*input.ExecutorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrExecutorNotFound
			}
			return nil, fmt.Errorf("failed to check executor: %w", err)
		}
	}

	labels, err := s.labelRepo.FindByIDs(input.LabelIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	if len(labels) != len(input.LabelIDs) {
		return nil, ErrLabelNotFound
	}

	return labels, nil
}

// CreateTask creates a task authored by the given actor.
func (s *TaskService) CreateTask(authorID uint64, input TaskInput) (*models.Task, error) {
	labels, err := s.resolveReferences(input)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		StatusID:    input.StatusID,
		AuthorID:    authorID,
		ExecutorID:  input.ExecutorID,
		Labels:      labels,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask retrieves a task with its relations.
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTask applies the task form to an existing task. The author is
// left untouched.
func (s *TaskService) UpdateTask(task *models.Task, input TaskInput) error {
	labels, err := s.resolveReferences(input)
	if err != nil {
		return err
	}

	task.Name = input.Name
	task.Description = input.Description
	task.StatusID = input.StatusID
	task.ExecutorID = input.ExecutorID

	if err := s.taskRepo.Update(task, labels); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// ListTasks retrieves tasks matching the filter.
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	return s.taskRepo.List(filter)
}

// DeleteTask removes a task. Authorization is the caller's concern.
func (s *TaskService) DeleteTask(id uint64) error {
	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
