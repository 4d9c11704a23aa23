package repository

import (
	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/database"
	"github.com/bra1695/backend-kanban/internal/models"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a board after checking name and slug uniqueness
func (r *GormBoardRepository) Create(board *models.Board) error {
	var count int64
	err := r.db.Model(&models.Board{}).
		Where("name = ? OR slug = ?", board.Name, board.Slug).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.Create(board).Error
}

// ListByOwner lists boards created by the owner, columns included
func (r *GormBoardRepository) ListByOwner(ownerID uint64) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.Scopes(database.OwnedBy(ownerID)).
		Preload("Teams").
		Preload("Columns", orderByPosition("columns")).
		Order("boards.created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// FindBySlug loads one owned board with its whole hierarchy
func (r *GormBoardRepository) FindBySlug(slug string, ownerID uint64) (*models.Board, error) {
	var board models.Board
	err := r.db.Scopes(database.OwnedBy(ownerID)).
		Where("slug = ?", slug).
		Preload("Teams").
		Preload("Columns", orderByPosition("columns")).
		Preload("Columns.Tasks", orderByPosition("tasks")).
		Preload("Columns.Tasks.Subtasks", orderByPosition("subtasks")).
		First(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// Update persists board fields, rejecting name/slug collisions with other boards
func (r *GormBoardRepository) Update(board *models.Board) error {
	var count int64
	err := r.db.Model(&models.Board{}).
		Where("(name = ? OR slug = ?) AND id <> ?", board.Name, board.Slug, board.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.Omit("Teams").Save(board).Error
}

// ReplaceTeams replaces the board's team member set
func (r *GormBoardRepository) ReplaceTeams(board *models.Board, teams []models.User) error {
	return r.db.Model(board).Association("Teams").Replace(teams)
}

// Delete removes the board and, transactionally, everything it owns.
// Cascade has to be explicit because children are soft deleted.
func (r *GormBoardRepository) Delete(board *models.Board) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		columnIDs := tx.Model(&models.Column{}).Select("id").Where("board_id = ?", board.ID)
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("column_id IN (?)", columnIDs)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Subtask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id IN (?)", columnIDs).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", board.ID).Delete(&models.Column{}).Error; err != nil {
			return err
		}
		if err := tx.Model(board).Association("Teams").Clear(); err != nil {
			return err
		}
		return tx.Delete(board).Error
	})
}

// AppendColumn inserts one column at the end of the board's sequence
func (r *GormBoardRepository) AppendColumn(board *models.Board, column *models.Column) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Column{}).Where("slug = ?", column.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		// MAX+1 rather than a row count: deletions leave holes and a
		// count would collide with a surviving sibling's position.
		var maxPosition int64
		if err := tx.Model(&models.Column{}).Where("board_id = ?", board.ID).
			Select("COALESCE(MAX(position), -1)").Scan(&maxPosition).Error; err != nil {
			return err
		}

		column.BoardID = board.ID
		column.Position = int(maxPosition) + 1
		return tx.Create(column).Error
	})
}

// FindColumnBySlug locates a column inside a board created by ownerID
func (r *GormBoardRepository) FindColumnBySlug(columnSlug string, ownerID uint64) (*models.Column, error) {
	var column models.Column
	err := r.db.
		Joins("JOIN boards ON boards.id = columns.board_id AND boards.deleted_at IS NULL").
		Where("columns.slug = ? AND boards.created_by = ?", columnSlug, ownerID).
		Preload("Tasks", orderByPosition("tasks")).
		Preload("Tasks.Subtasks", orderByPosition("subtasks")).
		First(&column).Error
	if err != nil {
		return nil, err
	}
	return &column, nil
}

// UpdateColumn persists column fields, rejecting slug collisions
func (r *GormBoardRepository) UpdateColumn(column *models.Column) error {
	var count int64
	err := r.db.Model(&models.Column{}).
		Where("slug = ? AND id <> ?", column.Slug, column.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.Save(column).Error
}

// DeleteColumn removes a column together with its tasks and subtasks
func (r *GormBoardRepository) DeleteColumn(column *models.Column) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("column_id = ?", column.ID)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Subtask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", column.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(column).Error
	})
}

func orderByPosition(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".position ASC")
	}
}
