package dto

import (
	"time"

	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64       `json:"id"`
	Title          string       `json:"title"`
	Slug           string       `json:"slug"`
	Description    string       `json:"description,omitempty"`
	Status         string       `json:"status"`
	DateStart      *time.Time   `json:"date_start,omitempty"`
	DateEnd        *time.Time   `json:"date_end,omitempty"`
	Hour           string       `json:"hour,omitempty"`
	CreatedBy      uint64       `json:"created_by"`
	OrganizationID uint64       `json:"organization_id"`
	AffectedTo     uint64       `json:"affected_to"`
	Images         []string     `json:"images"`
	Subtasks       []SubtaskDTO `json:"subtasks"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// SubtaskDTO represents a subtask in API responses
type SubtaskDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	DateStart   *time.Time `json:"date_start,omitempty"`
	DateEnd     *time.Time `json:"date_end,omitempty"`
	Hour        string     `json:"hour,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	Images      []string   `json:"images"`
	CreatedBy   uint64     `json:"created_by"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	subtasks := make([]SubtaskDTO, len(task.Subtasks))
	for i, subtask := range task.Subtasks {
		subtasks[i] = ToSubtaskDTO(subtask)
	}
	images := task.Images
	if images == nil {
		images = []string{}
	}
	return TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Slug:           task.Slug,
		Description:    task.Description,
		Status:         task.Status,
		DateStart:      task.DateStart,
		DateEnd:        task.DateEnd,
		Hour:           task.Hour,
		CreatedBy:      task.CreatedBy,
		OrganizationID: task.OrganizationID,
		AffectedTo:     task.AffectedTo,
		Images:         images,
		Subtasks:       subtasks,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToSubtaskDTO converts a Subtask model to SubtaskDTO
func ToSubtaskDTO(subtask models.Subtask) SubtaskDTO {
	images := subtask.Images
	if images == nil {
		images = []string{}
	}
	return SubtaskDTO{
		ID:          subtask.ID,
		Title:       subtask.Title,
		Slug:        subtask.Slug,
		Description: subtask.Description,
		DateStart:   subtask.DateStart,
		DateEnd:     subtask.DateEnd,
		Hour:        subtask.Hour,
		IsCompleted: subtask.IsCompleted,
		Images:      images,
		CreatedBy:   subtask.CreatedBy,
	}
}

// ToSubtaskDTOs converts a slice of subtasks
func ToSubtaskDTOs(subtasks []models.Subtask) []SubtaskDTO {
	dtos := make([]SubtaskDTO, len(subtasks))
	for i, subtask := range subtasks {
		dtos[i] = ToSubtaskDTO(subtask)
	}
	return dtos
}
