package models

import (
	"time"

	"gorm.io/gorm"
)

// Task status is a free-form string by design; Todo/Doing/Done are the values
// the frontend uses but renames must not require a migration.
const TaskStatusTodo = "Todo"

type Task struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	ColumnID       uint64         `gorm:"not null;index" json:"column_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Slug           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description    string         `gorm:"type:text" json:"description,omitempty"`
	Status         string         `gorm:"type:varchar(50);not null;default:'Todo'" json:"status"`
	DateStart      *time.Time     `json:"date_start,omitempty"`
	DateEnd        *time.Time     `json:"date_end,omitempty"`
	Hour           string         `gorm:"type:varchar(16)" json:"hour,omitempty"`
	CreatedBy      uint64         `gorm:"not null;index" json:"created_by"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	AffectedTo     uint64         `gorm:"not null;index" json:"affected_to"`
	Images         []string       `gorm:"serializer:json" json:"images"`
	Position       int            `gorm:"not null;default:0" json:"position"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator      *User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Assignee     *User         `gorm:"foreignKey:AffectedTo" json:"assignee,omitempty"`
	Subtasks     []Subtask     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"subtasks"`
}

type Subtask struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	TaskID      uint64         `gorm:"not null;index" json:"task_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	DateStart   *time.Time     `json:"date_start,omitempty"`
	DateEnd     *time.Time     `json:"date_end,omitempty"`
	Hour        string         `gorm:"type:varchar(16)" json:"hour,omitempty"`
	IsCompleted bool           `gorm:"not null;default:false" json:"is_completed"`
	Images      []string       `gorm:"serializer:json" json:"images"`
	CreatedBy   uint64         `gorm:"not null" json:"created_by"`
	Position    int            `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
