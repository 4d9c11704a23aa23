package dto

import (
	"github.com/bra1695/backend-kanban/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64          `json:"id"`
	Name           string          `json:"name"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Role           models.Role     `json:"role,omitempty"`
	Type           models.UserType `json:"type"`
	OrganizationID *uint64         `json:"organization_id,omitempty"`
	IsActive       bool            `json:"is_active"`
	Image          string          `json:"image,omitempty"`
	Address        string          `json:"address,omitempty"`
	PostalCode     string          `json:"postal_code,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Name:           user.Name,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		Type:           user.Type,
		OrganizationID: user.OrganizationID,
		IsActive:       user.IsActive,
		Image:          user.Image,
		Address:        user.Address,
		PostalCode:     user.PostalCode,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
