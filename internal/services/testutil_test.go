package services

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/token"
)

// fakeMailer records the tokens that would have been emailed.
type fakeMailer struct {
	confirmations map[string]string
	resets        map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		confirmations: make(map[string]string),
		resets:        make(map[string]string),
	}
}

func (m *fakeMailer) SendAccountConfirmation(to, token string) error {
	m.confirmations[to] = token
	return nil
}

func (m *fakeMailer) SendPasswordReset(to, token string) error {
	m.resets[to] = token
	return nil
}

// fakeUploader returns a deterministic URL per upload.
type fakeUploader struct {
	count int
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader) (string, error) {
	u.count++
	return fmt.Sprintf("https://images.test/%d.png", u.count), nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Board{},
		&models.Column{},
		&models.Task{},
		&models.Subtask{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newTestTokens() *token.Service {
	return token.NewService("test-secret", time.Hour)
}

// createActiveUser inserts a confirmed user, optionally inside an organization.
func createActiveUser(t *testing.T, db *gorm.DB, username string, userType models.UserType, orgID *uint64) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Name:           username,
		Username:       username,
		Email:          username + "@example.com",
		PasswordHash:   string(hashed),
		Type:           userType,
		OrganizationID: orgID,
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createOrganization(t *testing.T, db *gorm.DB, name string) *models.Organization {
	t.Helper()

	org := &models.Organization{Name: name, IsActive: true}
	require.NoError(t, db.Create(org).Error)
	return org
}
