package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/constants"
	"github.com/bra1695/backend-kanban/internal/mail"
	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
	"github.com/bra1695/backend-kanban/internal/token"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrMailDelivery         = errors.New("failed to send email")
)

// AuthService orchestrates registration, confirmation, login and password
// recovery on top of the user store, the token service and the mailer.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
	mailer   mail.Mailer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *token.Service, mailer mail.Mailer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Role     models.Role
	// AccountType is the registration classification: "organization"
	// accounts get the admin tier, everything else the user tier.
	AccountType string
}

// Register creates an inactive user and emails a confirmation link. The
// caller gets an acknowledgement only, never the token or credentials.
func (s *AuthService) Register(input RegisterInput) error {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" {
		return fmt.Errorf("username and email are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	userType := models.UserTypeUser
	if input.AccountType == "organization" {
		userType = models.UserTypeAdmin
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         input.Role,
		Type:         userType,
		IsActive:     false,
	}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	confirmation, err := s.tokens.IssueConfirmation(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue confirmation token: %w", err)
	}
	user.ConfirmationToken = &confirmation
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store confirmation token: %w", err)
	}

	if err := s.mailer.SendAccountConfirmation(user.Email, confirmation); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return nil
}

// ConfirmAccount activates the user the token was issued for. Confirming an
// already active account is a no-op reported through alreadyConfirmed.
func (s *AuthService) ConfirmAccount(tokenString string) (alreadyConfirmed bool, err error) {
	claims, err := s.tokens.Verify(tokenString, token.KindConfirmation)
	if err != nil {
		return false, ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return false, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to find user: %w", err)
	}

	if user.IsActive {
		return true, nil
	}

	// Only the token currently on record can confirm; a superseded one has
	// been replaced and must not replay.
	if user.ConfirmationToken == nil || *user.ConfirmationToken != tokenString {
		return false, ErrInvalidToken
	}

	user.IsActive = true
	user.ConfirmationToken = nil
	if err := s.userRepo.Update(user); err != nil {
		return false, fmt.Errorf("failed to activate user: %w", err)
	}

	return false, nil
}

// Login verifies credentials against username or email and mints a session
// token. Unknown identifier, inactive account and wrong password all fail
// with the same error so callers cannot probe for accounts.
func (s *AuthService) Login(identifier, password string) (string, error) {
	user, err := s.userRepo.FindByIdentifier(strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	session, err := s.tokens.IssueSession(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return session, nil
}

// ForgotPassword issues a short-lived reset token and emails a reset link.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	reset, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	// Only the most recent reset token is honored, and it is cleared on
	// use, so a reset link works exactly once.
	user.ResetToken = &reset
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(user.Email, reset); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// ResetPassword replaces the password of the token's subject.
func (s *AuthService) ResetPassword(tokenString, newPassword string) error {
	claims, err := s.tokens.Verify(tokenString, token.KindReset)
	if err != nil {
		return ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return ErrInvalidToken
	}

	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.ResetToken == nil || *user.ResetToken != tokenString {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashed)
	user.ResetToken = nil
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
