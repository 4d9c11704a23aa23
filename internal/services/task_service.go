package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
	"github.com/bra1695/backend-kanban/internal/upload"
	"github.com/bra1695/backend-kanban/internal/utils"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskTitleTaken = errors.New("a task with this title already exists")
	ErrTitleRequired  = errors.New("title is required")
	ErrNoOrganization = errors.New("user does not belong to an organization")
	ErrImageUpload    = errors.New("failed to upload image")
)

// TaskService handles tasks nested inside board columns. Mutations are
// scoped through the owning board; the organization and assignee read views
// cut across boards.
type TaskService struct {
	taskRepo  repository.TaskRepository
	boardRepo repository.BoardRepository
	uploader  upload.Uploader
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, boardRepo repository.BoardRepository, uploader upload.Uploader) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
		uploader:  uploader,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	DateStart   *time.Time
	DateEnd     *time.Time
	Hour        string
	AffectedTo  uint64
}

// UpdateTaskInput represents a partial task update. Nil fields keep their
// current value.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	DateStart   *time.Time
	DateEnd     *time.Time
	Hour        *string
	AffectedTo  *uint64
}

// Create creates a task inside the column identified by columnSlug. Images
// are uploaded first; only their URLs are persisted.
func (s *TaskService) Create(ctx context.Context, columnSlug string, input CreateTaskInput, principal *models.User, images []io.Reader) (*models.Task, error) {
	slug := utils.Slugify(input.Title)
	if slug == "" {
		return nil, ErrTitleRequired
	}
	if principal.OrganizationID == nil {
		return nil, ErrNoOrganization
	}

	column, err := s.boardRepo.FindColumnBySlug(columnSlug, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	urls, err := s.uploadAll(ctx, images)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	affectedTo := input.AffectedTo
	if affectedTo == 0 {
		affectedTo = principal.ID
	}

	task := &models.Task{
		ColumnID:       column.ID,
		Title:          input.Title,
		Slug:           slug,
		Description:    input.Description,
		Status:         status,
		DateStart:      input.DateStart,
		DateEnd:        input.DateEnd,
		Hour:           input.Hour,
		CreatedBy:      principal.ID,
		OrganizationID: *principal.OrganizationID,
		AffectedTo:     affectedTo,
		Images:         urls,
	}

	if err := s.taskRepo.Create(task); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTaskTitleTaken
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Get returns one task with subtasks, scoped through the principal's boards.
func (s *TaskService) Get(slug string, principal *models.User) (*models.Task, error) {
	task, err := s.taskRepo.FindBySlug(slug, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListOrganization lists the tasks of the principal's organization.
func (s *TaskService) ListOrganization(principal *models.User, params utils.PaginationParams) ([]models.Task, int64, error) {
	if principal.OrganizationID == nil {
		return nil, 0, ErrNoOrganization
	}
	tasks, total, err := s.taskRepo.ListByOrganization(*principal.OrganizationID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListAssigned lists the tasks assigned to the principal.
func (s *TaskService) ListAssigned(principal *models.User) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByAssignee(principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial update. Unspecified fields keep their value; the
// image set is replaced only when new uploads are supplied.
func (s *TaskService) Update(ctx context.Context, slug string, input UpdateTaskInput, principal *models.User, images []io.Reader) (*models.Task, error) {
	task, err := s.Get(slug, principal)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		newSlug := utils.Slugify(*input.Title)
		if newSlug == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
		task.Slug = newSlug
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.DateStart != nil {
		task.DateStart = input.DateStart
	}
	if input.DateEnd != nil {
		task.DateEnd = input.DateEnd
	}
	if input.Hour != nil {
		task.Hour = *input.Hour
	}
	if input.AffectedTo != nil {
		task.AffectedTo = *input.AffectedTo
	}

	if len(images) > 0 {
		urls, err := s.uploadAll(ctx, images)
		if err != nil {
			return nil, err
		}
		task.Images = urls
	}

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTaskTitleTaken
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete removes one task and its subtasks.
func (s *TaskService) Delete(slug string, principal *models.User) error {
	task, err := s.Get(slug, principal)
	if err != nil {
		return err
	}
	if err := s.taskRepo.Delete(task); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) uploadAll(ctx context.Context, images []io.Reader) ([]string, error) {
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
