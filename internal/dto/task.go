package dto

import (
	"time"

	"github.com/akrotov/task-manager/internal/models"
)

// TaskDTO represents a task in page payloads
type TaskDTO struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      StatusDTO  `json:"status"`
	Author      UserDTO    `json:"author"`
	Executor    *UserDTO   `json:"executor,omitempty"`
	Labels      []LabelDTO `json:"labels,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToTaskDTO converts a Task model with preloaded relations to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      ToStatusDTO(task.Status),
		Author:      ToUserDTO(task.Author),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Executor != nil {
		executor := ToUserDTO(*task.Executor)
		dto.Executor = &executor
	}

	if len(task.Labels) > 0 {
		dto.Labels = ToLabelDTOs(task.Labels)
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
