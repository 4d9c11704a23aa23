package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
	"github.com/bra1695/backend-kanban/internal/upload"
	"github.com/bra1695/backend-kanban/internal/utils"
)

var (
	ErrSubtaskNotFound   = errors.New("subtask not found")
	ErrSubtaskTitleTaken = errors.New("a subtask with this title already exists")
)

// SubtaskService manages subtasks through their owning task. A subtask is
// only reachable via a task on a board the principal owns.
type SubtaskService struct {
	taskRepo repository.TaskRepository
	uploader upload.Uploader
	tasks    *TaskService
}

// NewSubtaskService creates a new SubtaskService.
func NewSubtaskService(taskRepo repository.TaskRepository, uploader upload.Uploader, tasks *TaskService) *SubtaskService {
	return &SubtaskService{
		taskRepo: taskRepo,
		uploader: uploader,
		tasks:    tasks,
	}
}

// CreateSubtaskInput represents input for creating a subtask.
type CreateSubtaskInput struct {
	Title       string
	Description string
	DateStart   *time.Time
	DateEnd     *time.Time
	Hour        string
	IsCompleted bool
}

// UpdateSubtaskInput represents a partial subtask update.
type UpdateSubtaskInput struct {
	Title       *string
	Description *string
	DateStart   *time.Time
	DateEnd     *time.Time
	Hour        *string
	IsCompleted *bool
}

// Add appends a subtask to the task identified by taskSlug.
func (s *SubtaskService) Add(ctx context.Context, taskSlug string, input CreateSubtaskInput, principal *models.User, images []io.Reader) (*models.Subtask, error) {
	slug := utils.Slugify(input.Title)
	if slug == "" {
		return nil, ErrTitleRequired
	}

	task, err := s.tasks.Get(taskSlug, principal)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	if len(images) > 0 {
		urls, err = s.uploadAll(ctx, images)
		if err != nil {
			return nil, err
		}
	}

	subtask := &models.Subtask{
		TaskID:      task.ID,
		Title:       input.Title,
		Slug:        slug,
		Description: input.Description,
		DateStart:   input.DateStart,
		DateEnd:     input.DateEnd,
		Hour:        input.Hour,
		IsCompleted: input.IsCompleted,
		Images:      urls,
		CreatedBy:   principal.ID,
	}

	if err := s.taskRepo.CreateSubtask(subtask); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSubtaskTitleTaken
		}
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}
	return subtask, nil
}

// List returns the subtasks of a task in order.
func (s *SubtaskService) List(taskSlug string, principal *models.User) ([]models.Subtask, error) {
	task, err := s.tasks.Get(taskSlug, principal)
	if err != nil {
		return nil, err
	}
	return task.Subtasks, nil
}

// Get returns one subtask located through its owning task.
func (s *SubtaskService) Get(taskSlug, subtaskSlug string, principal *models.User) (*models.Subtask, error) {
	task, err := s.tasks.Get(taskSlug, principal)
	if err != nil {
		return nil, err
	}
	for i := range task.Subtasks {
		if task.Subtasks[i].Slug == subtaskSlug {
			return &task.Subtasks[i], nil
		}
	}
	return nil, ErrSubtaskNotFound
}

// Update applies a partial update. Nil fields are preserved; images are
// replaced only when new uploads exist.
func (s *SubtaskService) Update(ctx context.Context, taskSlug, subtaskSlug string, input UpdateSubtaskInput, principal *models.User, images []io.Reader) (*models.Subtask, error) {
	subtask, err := s.Get(taskSlug, subtaskSlug, principal)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		newSlug := utils.Slugify(*input.Title)
		if newSlug == "" {
			return nil, ErrTitleRequired
		}
		subtask.Title = *input.Title
		subtask.Slug = newSlug
	}
	if input.Description != nil {
		subtask.Description = *input.Description
	}
	if input.DateStart != nil {
		subtask.DateStart = input.DateStart
	}
	if input.DateEnd != nil {
		subtask.DateEnd = input.DateEnd
	}
	if input.Hour != nil {
		subtask.Hour = *input.Hour
	}
	if input.IsCompleted != nil {
		subtask.IsCompleted = *input.IsCompleted
	}

	if len(images) > 0 {
		urls, err := s.uploadAll(ctx, images)
		if err != nil {
			return nil, err
		}
		subtask.Images = urls
	}

	if err := s.taskRepo.UpdateSubtask(subtask); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSubtaskTitleTaken
		}
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}
	return subtask, nil
}

// Delete removes one subtask.
func (s *SubtaskService) Delete(taskSlug, subtaskSlug string, principal *models.User) error {
	subtask, err := s.Get(taskSlug, subtaskSlug, principal)
	if err != nil {
		return err
	}
	if err := s.taskRepo.DeleteSubtask(subtask); err != nil {
		return fmt.Errorf("failed to delete subtask: %w", err)
	}
	return nil
}

func (s *SubtaskService) uploadAll(ctx context.Context, images []io.Reader) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.uploader.Upload(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
