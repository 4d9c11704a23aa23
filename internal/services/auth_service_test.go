package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
)

type authTestEnv struct {
	db     *gorm.DB
	svc    *AuthService
	mailer *fakeMailer
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db := setupTestDB(t)
	mailer := newFakeMailer()
	svc := NewAuthService(repository.NewUserRepository(db), newTestTokens(), mailer)

	return authTestEnv{db: db, svc: svc, mailer: mailer}
}

func registerInput(username string) RegisterInput {
	return RegisterInput{
		Name:        "Test User",
		Username:    username,
		Email:       username + "@example.com",
		Password:    "supersecret",
		AccountType: "organization",
	}
}

func TestRegisterCreatesInactiveUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&user).Error)

	require.False(t, user.IsActive)
	require.Equal(t, models.UserTypeAdmin, user.Type)
	require.NotNil(t, user.ConfirmationToken)
	require.NotEqual(t, "supersecret", *user.ConfirmationToken)
	require.NotEqual(t, "supersecret", user.PasswordHash)

	// The emailed token is the stored one.
	require.Equal(t, *user.ConfirmationToken, env.mailer.confirmations["alice@example.com"])
}

func TestRegisterDerivesTierFromAccountType(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("orgowner")))

	simple := registerInput("simpleuser")
	simple.AccountType = "simple"
	require.NoError(t, env.svc.Register(simple))

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "simpleuser").First(&user).Error)
	require.Equal(t, models.UserTypeUser, user.Type)
}

func TestRegisterRejectsTakenUsernameAndEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))

	err := env.svc.Register(registerInput("alice"))
	require.ErrorIs(t, err, ErrUsernameTaken)

	dup := registerInput("alice2")
	dup.Email = "alice@example.com"
	err = env.svc.Register(dup)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestConfirmAccountActivatesOnce(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))
	confirmation := env.mailer.confirmations["alice@example.com"]

	already, err := env.svc.ConfirmAccount(confirmation)
	require.NoError(t, err)
	require.False(t, already)

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&user).Error)
	require.True(t, user.IsActive)
	require.Nil(t, user.ConfirmationToken)

	// Confirming again is idempotent.
	already, err = env.svc.ConfirmAccount(confirmation)
	require.NoError(t, err)
	require.True(t, already)
}

func TestConfirmAccountRejectsSupersededToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))
	confirmation := env.mailer.confirmations["alice@example.com"]

	// Simulate a newer token replacing the emailed one.
	superseded := "superseded-token"
	require.NoError(t, env.db.Model(&models.User{}).
		Where("username = ?", "alice").
		Update("confirmation_token", superseded).Error)

	_, err := env.svc.ConfirmAccount(confirmation)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmAccountRejectsGarbageToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.svc.ConfirmAccount("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoginFailsUniformly(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))

	// Unknown identifier.
	_, err := env.svc.Login("nobody", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Known but unconfirmed account.
	_, err = env.svc.Login("alice", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, confErr := env.svc.ConfirmAccount(env.mailer.confirmations["alice@example.com"])
	require.NoError(t, confErr)

	// Wrong password.
	_, err = env.svc.Login("alice", "wrongpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginAcceptsUsernameOrEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))
	_, err := env.svc.ConfirmAccount(env.mailer.confirmations["alice@example.com"])
	require.NoError(t, err)

	tokenByUsername, err := env.svc.Login("alice", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, tokenByUsername)

	tokenByEmail, err := env.svc.Login("alice@example.com", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, tokenByEmail)
}

func TestForgotPasswordDiscloseUnknownEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	err := env.svc.ForgotPassword("nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetPasswordFlow(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))
	_, err := env.svc.ConfirmAccount(env.mailer.confirmations["alice@example.com"])
	require.NoError(t, err)

	require.NoError(t, env.svc.ForgotPassword("alice@example.com"))
	reset := env.mailer.resets["alice@example.com"]
	require.NotEmpty(t, reset)

	require.NoError(t, env.svc.ResetPassword(reset, "NewPass123"))

	// New password works, old one does not.
	_, err = env.svc.Login("alice", "NewPass123")
	require.NoError(t, err)
	_, err = env.svc.Login("alice", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPasswordTokenIsSingleUse(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))
	_, err := env.svc.ConfirmAccount(env.mailer.confirmations["alice@example.com"])
	require.NoError(t, err)

	require.NoError(t, env.svc.ForgotPassword("alice@example.com"))
	reset := env.mailer.resets["alice@example.com"]

	require.NoError(t, env.svc.ResetPassword(reset, "NewPass123"))

	// Replaying the consumed token must fail even inside its TTL.
	err = env.svc.ResetPassword(reset, "AnotherPass456")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = env.svc.Login("alice", "NewPass123")
	require.NoError(t, err)
}

func TestResetPasswordHonorsOnlyLatestToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))
	_, err := env.svc.ConfirmAccount(env.mailer.confirmations["alice@example.com"])
	require.NoError(t, err)

	require.NoError(t, env.svc.ForgotPassword("alice@example.com"))
	first := env.mailer.resets["alice@example.com"]
	require.NoError(t, env.svc.ForgotPassword("alice@example.com"))
	second := env.mailer.resets["alice@example.com"]
	require.NotEqual(t, first, second)

	err = env.svc.ResetPassword(first, "NewPass123")
	require.ErrorIs(t, err, ErrInvalidToken)
	require.NoError(t, env.svc.ResetPassword(second, "NewPass123"))
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	require.NoError(t, env.svc.Register(registerInput("alice")))
	_, err := env.svc.ConfirmAccount(env.mailer.confirmations["alice@example.com"])
	require.NoError(t, err)

	session, err := env.svc.Login("alice", "supersecret")
	require.NoError(t, err)

	// A session token must not be usable as a reset token.
	err = env.svc.ResetPassword(session, "NewPass123")
	require.ErrorIs(t, err, ErrInvalidToken)
}
