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
	ErrBoardNotFound  = errors.New("board not found")
	ErrBoardNameTaken = errors.New("a board with this name already exists")
	ErrNameRequired   = errors.New("name is required")
)

// BoardService handles the board aggregate. Every operation is scoped to the
// principal that owns the board; an unowned board behaves exactly like a
// missing one.
type BoardService struct {
	boardRepo repository.BoardRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository) *BoardService {
	return &BoardService{boardRepo: boardRepo}
}

// CreateBoardInput represents input for creating a board.
type CreateBoardInput struct {
	Name    string
	TeamIDs []uint64
}

// UpdateBoardInput represents a partial board update.
type UpdateBoardInput struct {
	Name    *string
	TeamIDs *[]uint64
}

// Create creates a board owned by the principal.
func (s *BoardService) Create(input CreateBoardInput, principal *models.User) (*models.Board, error) {
	// Slugify("!!!") is empty, which would make the board unreachable.
	slug := utils.Slugify(input.Name)
	if slug == "" {
		return nil, ErrNameRequired
	}

	board := &models.Board{
		Name:      input.Name,
		Slug:      slug,
		CreatedBy: principal.ID,
		Teams:     teamRefs(input.TeamIDs),
	}

	if err := s.boardRepo.Create(board); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBoardNameTaken
		}
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return s.boardRepo.FindBySlug(board.Slug, principal.ID)
}

// List returns the boards created by the principal.
func (s *BoardService) List(principal *models.User) ([]models.Board, error) {
	boards, err := s.boardRepo.ListByOwner(principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// Get returns one owned board with its whole hierarchy.
func (s *BoardService) Get(slug string, principal *models.User) (*models.Board, error) {
	board, err := s.boardRepo.FindBySlug(slug, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}

// Update applies a partial update to an owned board. Renaming re-derives the
// slug; renaming to the same name keeps it.
func (s *BoardService) Update(slug string, input UpdateBoardInput, principal *models.User) (*models.Board, error) {
	board, err := s.Get(slug, principal)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		newSlug := utils.Slugify(*input.Name)
		if newSlug == "" {
			return nil, ErrNameRequired
		}
		board.Name = *input.Name
		board.Slug = newSlug
	}

	if err := s.boardRepo.Update(board); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBoardNameTaken
		}
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	if input.TeamIDs != nil {
		if err := s.boardRepo.ReplaceTeams(board, teamRefs(*input.TeamIDs)); err != nil {
			return nil, fmt.Errorf("failed to update board teams: %w", err)
		}
	}

	return s.boardRepo.FindBySlug(board.Slug, principal.ID)
}

// Delete removes an owned board and everything nested under it.
func (s *BoardService) Delete(slug string, principal *models.User) error {
	board, err := s.Get(slug, principal)
	if err != nil {
		return err
	}
	if err := s.boardRepo.Delete(board); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

func teamRefs(ids []uint64) []models.User {
	teams := make([]models.User, 0, len(ids))
	for _, id := range ids {
		teams = append(teams, models.User{ID: id})
	}
	return teams
}
