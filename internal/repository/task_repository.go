package repository

import (
	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/database"
	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task inside its column
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Task{}).Where("slug = ?", task.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		var maxPosition int64
		if err := tx.Model(&models.Task{}).Where("column_id = ?", task.ColumnID).
			Select("COALESCE(MAX(position), -1)").Scan(&maxPosition).Error; err != nil {
			return err
		}

		task.Position = int(maxPosition) + 1
		return tx.Create(task).Error
	})
}

// FindBySlug locates a task whose owning board was created by ownerID
func (r *GormTaskRepository) FindBySlug(slug string, ownerID uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Joins("JOIN columns ON columns.id = tasks.column_id AND columns.deleted_at IS NULL").
		Joins("JOIN boards ON boards.id = columns.board_id AND boards.deleted_at IS NULL").
		Where("tasks.slug = ? AND boards.created_by = ?", slug, ownerID).
		Preload("Subtasks", orderByPosition("subtasks")).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOrganization lists tasks belonging to an organization, newest first
func (r *GormTaskRepository) ListByOrganization(organizationID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("organization_id = ?", organizationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := query.
		Scopes(database.Paginate(params)).
		Preload("Subtasks", orderByPosition("subtasks")).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// ListByAssignee lists tasks assigned to a user
func (r *GormTaskRepository) ListByAssignee(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("affected_to = ?", userID).
		Preload("Subtasks", orderByPosition("subtasks")).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists task fields, rejecting slug collisions with other tasks
func (r *GormTaskRepository) Update(task *models.Task) error {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("slug = ? AND id <> ?", task.Slug, task.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.Omit("Subtasks").Save(task).Error
}

// Delete removes a task and its subtasks
func (r *GormTaskRepository) Delete(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Subtask{}).Error; err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
}

// CreateSubtask appends a subtask to its task
func (r *GormTaskRepository) CreateSubtask(subtask *models.Subtask) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Subtask{}).Where("slug = ?", subtask.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		var maxPosition int64
		if err := tx.Model(&models.Subtask{}).Where("task_id = ?", subtask.TaskID).
			Select("COALESCE(MAX(position), -1)").Scan(&maxPosition).Error; err != nil {
			return err
		}

		subtask.Position = int(maxPosition) + 1
		return tx.Create(subtask).Error
	})
}

// UpdateSubtask persists subtask fields, rejecting slug collisions
func (r *GormTaskRepository) UpdateSubtask(subtask *models.Subtask) error {
	var count int64
	err := r.db.Model(&models.Subtask{}).
		Where("slug = ? AND id <> ?", subtask.Slug, subtask.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.Save(subtask).Error
}

// DeleteSubtask removes one subtask
func (r *GormTaskRepository) DeleteSubtask(subtask *models.Subtask) error {
	return r.db.Delete(subtask).Error
}
