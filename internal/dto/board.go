package dto

import (
	"time"

	"github.com/bra1695/backend-kanban/internal/models"
)

// BoardDTO represents a board with its full hierarchy in API responses
type BoardDTO struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	CreatedBy uint64      `json:"created_by"`
	Teams     []UserDTO   `json:"teams"`
	Columns   []ColumnDTO `json:"columns"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ColumnDTO represents a column in API responses
type ColumnDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedBy uint64    `json:"created_by"`
	Tasks     []TaskDTO `json:"tasks"`
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	teams := make([]UserDTO, len(board.Teams))
	for i, user := range board.Teams {
		teams[i] = ToUserDTO(user)
	}
	columns := make([]ColumnDTO, len(board.Columns))
	for i, column := range board.Columns {
		columns[i] = ToColumnDTO(column)
	}
	return BoardDTO{
		ID:        board.ID,
		Name:      board.Name,
		Slug:      board.Slug,
		CreatedBy: board.CreatedBy,
		Teams:     teams,
		Columns:   columns,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	}
}

// ToBoardDTOs converts a slice of boards
func ToBoardDTOs(boards []models.Board) []BoardDTO {
	dtos := make([]BoardDTO, len(boards))
	for i, board := range boards {
		dtos[i] = ToBoardDTO(board)
	}
	return dtos
}

// ToColumnDTO converts a Column model to ColumnDTO
func ToColumnDTO(column models.Column) ColumnDTO {
	tasks := make([]TaskDTO, len(column.Tasks))
	for i, task := range column.Tasks {
		tasks[i] = ToTaskDTO(task)
	}
	return ColumnDTO{
		ID:        column.ID,
		Name:      column.Name,
		Slug:      column.Slug,
		CreatedBy: column.CreatedBy,
		Tasks:     tasks,
	}
}

// ToColumnDTOs converts a slice of columns
func ToColumnDTOs(columns []models.Column) []ColumnDTO {
	dtos := make([]ColumnDTO, len(columns))
	for i, column := range columns {
		dtos[i] = ToColumnDTO(column)
	}
	return dtos
}
