package models

import (
	"time"

	"gorm.io/gorm"
)

type Organization struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Address     string         `gorm:"type:varchar(255)" json:"address,omitempty"`
	Phone       string         `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Email       string         `gorm:"type:varchar(255)" json:"email,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members []User `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
	Tasks   []Task `gorm:"foreignKey:OrganizationID" json:"-"`
}
