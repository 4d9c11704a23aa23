package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the functional role of a user inside a team. It is metadata only
// and never grants permissions.
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleDesigner  Role = "designer"
	RolePM        Role = "PM"
	RoleSM        Role = "SM"
)

// UserType is the authorization tier. Every permission check goes through the
// tier, not the functional role.
type UserType string

const (
	UserTypeSuperadmin UserType = "superadmin"
	UserTypeAdmin      UserType = "admin"
	UserTypeUser       UserType = "user"
)

type User struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	Username          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email             string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"type:varchar(255);not null" json:"-"`
	Role              Role           `gorm:"type:varchar(20)" json:"role,omitempty"`
	Type              UserType       `gorm:"type:varchar(20);not null;default:'user'" json:"type"`
	OrganizationID    *uint64        `json:"organization_id,omitempty"`
	IsActive          bool           `gorm:"not null;default:false" json:"is_active"`
	ConfirmationToken *string        `gorm:"type:varchar(512)" json:"-"`
	ResetToken        *string        `gorm:"type:varchar(512)" json:"-"`
	Image             string         `gorm:"type:varchar(512)" json:"image,omitempty"`
	Address           string         `gorm:"type:varchar(255)" json:"address,omitempty"`
	PostalCode        string         `gorm:"type:varchar(32)" json:"postal_code,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization  *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	CreatedBoards []Board       `gorm:"foreignKey:CreatedBy" json:"-"`
}
