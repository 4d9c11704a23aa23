package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
	"github.com/bra1695/backend-kanban/internal/utils"
)

var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrColumnNameTaken = errors.New("a column with this name already exists")
)

// ColumnService manages the column sequence of a board. Columns only exist
// inside a board, so every lookup goes through the owning board's scope.
type ColumnService struct {
	boardRepo repository.BoardRepository
}

// NewColumnService creates a new ColumnService.
func NewColumnService(boardRepo repository.BoardRepository) *ColumnService {
	return &ColumnService{boardRepo: boardRepo}
}

// UpdateColumnInput represents a partial column update.
type UpdateColumnInput struct {
	Name *string
}

// Add appends one column to the board identified by boardSlug. Existing
// columns keep their position; the new column goes last.
func (s *ColumnService) Add(boardSlug, name string, principal *models.User) (*models.Board, error) {
	slug := utils.Slugify(name)
	if slug == "" {
		return nil, ErrNameRequired
	}

	board, err := s.boardRepo.FindBySlug(boardSlug, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	column := &models.Column{
		Name:      name,
		Slug:      slug,
		CreatedBy: principal.ID,
	}

	if err := s.boardRepo.AppendColumn(board, column); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrColumnNameTaken
		}
		return nil, fmt.Errorf("failed to add column: %w", err)
	}

	return s.boardRepo.FindBySlug(boardSlug, principal.ID)
}

// List returns the columns of an owned board in order.
func (s *ColumnService) List(boardSlug string, principal *models.User) ([]models.Column, error) {
	board, err := s.boardRepo.FindBySlug(boardSlug, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board.Columns, nil
}

// Get returns one column located through the principal's boards.
func (s *ColumnService) Get(columnSlug string, principal *models.User) (*models.Column, error) {
	column, err := s.boardRepo.FindColumnBySlug(columnSlug, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}
	return column, nil
}

// Update applies a partial update; renaming re-derives the slug.
func (s *ColumnService) Update(columnSlug string, input UpdateColumnInput, principal *models.User) (*models.Column, error) {
	column, err := s.Get(columnSlug, principal)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		newSlug := utils.Slugify(*input.Name)
		if newSlug == "" {
			return nil, ErrNameRequired
		}
		column.Name = *input.Name
		column.Slug = newSlug
	}

	if err := s.boardRepo.UpdateColumn(column); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrColumnNameTaken
		}
		return nil, fmt.Errorf("failed to update column: %w", err)
	}
	return column, nil
}

// Delete removes a column and the tasks nested under it.
func (s *ColumnService) Delete(columnSlug string, principal *models.User) error {
	column, err := s.Get(columnSlug, principal)
	if err != nil {
		return err
	}
	if err := s.boardRepo.DeleteColumn(column); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	return nil
}
