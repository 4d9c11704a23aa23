package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/constants"
	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
	"github.com/bra1695/backend-kanban/internal/upload"
)

var ErrNotAllowed = errors.New("operation not allowed")

// UserService handles user administration and profile updates.
type UserService struct {
	userRepo repository.UserRepository
	uploader upload.Uploader
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, uploader upload.Uploader) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

// UpdateUserInput represents a partial profile update.
type UpdateUserInput struct {
	Name           *string
	Role           *models.Role
	Address        *string
	PostalCode     *string
	OrganizationID *uint64
	// Password, when set, is re-hashed before it is stored. Plaintext never
	// reaches the repository.
	Password *string
}

// List returns all users.
func (s *UserService) List() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update applies a profile update. A user may update themselves; admins and
// superadmins may update anyone.
func (s *UserService) Update(ctx context.Context, id uint64, input UpdateUserInput, principal *models.User, image io.Reader) (*models.User, error) {
	if principal.ID != id && principal.Type == models.UserTypeUser {
		return nil, ErrNotAllowed
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.PostalCode != nil {
		user.PostalCode = *input.PostalCode
	}
	if input.OrganizationID != nil {
		user.OrganizationID = input.OrganizationID
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if image != nil {
		url, err := s.uploader.Upload(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		user.Image = url
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user. Tier enforcement happens at the route.
func (s *UserService) Delete(id uint64) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
