package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
)

var (
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrOrganizationNameTaken = errors.New("an organization with this name already exists")
)

// OrganizationService handles organization CRUD.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo}
}

// CreateOrganizationInput represents input for creating an organization.
type CreateOrganizationInput struct {
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
}

// UpdateOrganizationInput represents a partial organization update.
type UpdateOrganizationInput struct {
	Name        *string
	Description *string
	Address     *string
	Phone       *string
	Email       *string
	IsActive    *bool
}

// Create creates a new organization.
func (s *OrganizationService) Create(input CreateOrganizationInput) (*models.Organization, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	org := &models.Organization{
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Phone:       input.Phone,
		Email:       input.Email,
		IsActive:    true,
	}
	if err := s.orgRepo.Create(org); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrOrganizationNameTaken
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return org, nil
}

// List returns all organizations.
func (s *OrganizationService) List() ([]models.Organization, error) {
	orgs, err := s.orgRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// Get returns one organization by ID.
func (s *OrganizationService) Get(id uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// Update applies a partial update to an organization.
func (s *OrganizationService) Update(id uint64, input UpdateOrganizationInput) (*models.Organization, error) {
	org, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		org.Name = *input.Name
	}
	if input.Description != nil {
		org.Description = *input.Description
	}
	if input.Address != nil {
		org.Address = *input.Address
	}
	if input.Phone != nil {
		org.Phone = *input.Phone
	}
	if input.Email != nil {
		org.Email = *input.Email
	}
	if input.IsActive != nil {
		org.IsActive = *input.IsActive
	}

	if err := s.orgRepo.Update(org); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrOrganizationNameTaken
		}
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// Delete removes an organization.
func (s *OrganizationService) Delete(id uint64) error {
	if err := s.orgRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return nil
}
