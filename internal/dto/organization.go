package dto

import (
	"github.com/bra1695/backend-kanban/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:          org.ID,
		Name:        org.Name,
		Description: org.Description,
		Address:     org.Address,
		Phone:       org.Phone,
		Email:       org.Email,
		IsActive:    org.IsActive,
	}
}

// ToOrganizationDTOs converts a slice of organizations
func ToOrganizationDTOs(orgs []models.Organization) []OrganizationDTO {
	dtos := make([]OrganizationDTO, len(orgs))
	for i, org := range orgs {
		dtos[i] = ToOrganizationDTO(org)
	}
	return dtos
}
