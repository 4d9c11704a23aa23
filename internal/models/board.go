package models

import (
	"time"

	"gorm.io/gorm"
)

// Board is the aggregate root. Columns, tasks and subtasks live in their own
// tables with a parent id, but they have no identity outside the board: every
// mutation goes through the owning board and deleting a board cascades all
// the way down.
type Board struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedBy uint64         `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator *User    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Teams   []User   `gorm:"many2many:board_members" json:"teams,omitempty"`
	Columns []Column `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"columns"`
}

type Column struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	BoardID   uint64         `gorm:"not null;index" json:"board_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedBy uint64         `gorm:"not null" json:"created_by"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks []Task `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"tasks"`
}
