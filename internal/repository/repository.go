package repository

import (
	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIdentifier finds a user whose username or email matches
	FindByIdentifier(identifier string) (*models.User, error)

	// List retrieves all users
	List() ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete soft deletes a user
	Delete(id uint64) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	Create(org *models.Organization) error
	FindByID(id uint64) (*models.Organization, error)
	FindByName(name string) (*models.Organization, error)
	List() ([]models.Organization, error)
	Update(org *models.Organization) error
	Delete(id uint64) error
}

// BoardRepository owns the Board aggregate. Every read and write is scoped
// to the owning user so that a missing board and a board owned by someone
// else are the same ErrNotFound to the caller.
type BoardRepository interface {
	// Create creates a board; returns ErrDuplicate when name or slug is taken
	Create(board *models.Board) error

	// ListByOwner lists boards created by the owner
	ListByOwner(ownerID uint64) ([]models.Board, error)

	// FindBySlug loads one board with its full column/task/subtask hierarchy
	FindBySlug(slug string, ownerID uint64) (*models.Board, error)

	// Update persists board fields; returns ErrDuplicate on slug collision
	Update(board *models.Board) error

	// ReplaceTeams replaces the board's team member set
	ReplaceTeams(board *models.Board, teams []models.User) error

	// Delete removes the board and everything it owns
	Delete(board *models.Board) error

	// AppendColumn adds one column at the end of the board's sequence,
	// leaving existing columns untouched
	AppendColumn(board *models.Board, column *models.Column) error

	// FindColumnBySlug locates a column inside a board owned by ownerID
	FindColumnBySlug(columnSlug string, ownerID uint64) (*models.Column, error)

	// UpdateColumn persists column fields
	UpdateColumn(column *models.Column) error

	// DeleteColumn removes a column and the tasks it owns
	DeleteColumn(column *models.Column) error
}

// TaskRepository accesses tasks and their subtasks. Mutating lookups are
// scoped through the owning board; the two read views (organization,
// assignee) are scoped by their own reference instead.
type TaskRepository interface {
	// Create creates a task inside a column; ErrDuplicate on slug collision
	Create(task *models.Task) error

	// FindBySlug locates a task whose owning board was created by ownerID
	FindBySlug(slug string, ownerID uint64) (*models.Task, error)

	// ListByOrganization lists tasks belonging to an organization
	ListByOrganization(organizationID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// ListByAssignee lists tasks assigned to a user
	ListByAssignee(userID uint64) ([]models.Task, error)

	// Update persists task fields
	Update(task *models.Task) error

	// Delete removes a task and its subtasks
	Delete(task *models.Task) error

	// CreateSubtask appends a subtask to a task
	CreateSubtask(subtask *models.Subtask) error

	// UpdateSubtask persists subtask fields
	UpdateSubtask(subtask *models.Subtask) error

	// DeleteSubtask removes one subtask
	DeleteSubtask(subtask *models.Subtask) error
}
