package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bra1695/backend-kanban/internal/middleware"
	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
	"github.com/bra1695/backend-kanban/internal/services"
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

type fakeUploader struct {
	count int
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader) (string, error) {
	u.count++
	return fmt.Sprintf("https://images.test/%d.png", u.count), nil
}

type apiTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	mailer *fakeMailer
	tokens *token.Service
}

// setupAPITestEnv wires the whole API against an in-memory database, with
// the mailer and uploader replaced by fakes.
func setupAPITestEnv(t *testing.T) apiTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

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

	mailer := newFakeMailer()
	uploader := &fakeUploader{}
	tokens := token.NewService("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokens, mailer)
	userService := services.NewUserService(userRepo, uploader)
	orgService := services.NewOrganizationService(orgRepo)
	boardService := services.NewBoardService(boardRepo)
	columnService := services.NewColumnService(boardRepo)
	taskService := services.NewTaskService(taskRepo, boardRepo, uploader)
	subtaskService := services.NewSubtaskService(taskRepo, uploader, taskService)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	orgHandler := NewOrganizationHandler(orgService)
	boardHandler := NewBoardHandler(boardService)
	columnHandler := NewColumnHandler(columnService)
	taskHandler := NewTaskHandler(taskService)
	subtaskHandler := NewSubtaskHandler(subtaskService)

	r := gin.New()

	requireAuth := middleware.RequireAuth(tokens, userRepo)
	adminOnly := middleware.RequireType(models.UserTypeAdmin, models.UserTypeSuperadmin)
	superadminOnly := middleware.RequireType(models.UserTypeSuperadmin)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/confirm-account", authHandler.ConfirmAccount)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", requireAuth, userHandler.GetCurrentUser)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", adminOnly, userHandler.ListUsers)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", superadminOnly, userHandler.DeleteUser)
		}

		orgs := api.Group("/organizations")
		orgs.Use(requireAuth)
		{
			orgs.POST("", adminOnly, orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.GET("/:id", orgHandler.GetOrganization)
			orgs.PATCH("/:id", adminOnly, orgHandler.UpdateOrganization)
			orgs.DELETE("/:id", superadminOnly, orgHandler.DeleteOrganization)
		}

		boards := api.Group("/boards")
		boards.Use(requireAuth)
		{
			boards.POST("", adminOnly, boardHandler.CreateBoard)
			boards.GET("", boardHandler.ListBoards)
			boards.GET("/:slug", boardHandler.GetBoard)
			boards.PUT("/:slug", boardHandler.UpdateBoard)
			boards.DELETE("/:slug", boardHandler.DeleteBoard)
			boards.POST("/:slug/columns", columnHandler.AddColumn)
			boards.GET("/:slug/columns", columnHandler.ListColumns)
		}

		columns := api.Group("/columns")
		columns.Use(requireAuth)
		{
			columns.PATCH("/:columnSlug", columnHandler.UpdateColumn)
			columns.DELETE("/:columnSlug", columnHandler.DeleteColumn)
			columns.POST("/:columnSlug/tasks", taskHandler.CreateTask)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/assigned", taskHandler.ListAssignedTasks)
			tasks.GET("/:slug", taskHandler.GetTask)
			tasks.PATCH("/:slug", taskHandler.UpdateTask)
			tasks.DELETE("/:slug", taskHandler.DeleteTask)
			tasks.POST("/:slug/subtasks", subtaskHandler.AddSubtask)
			tasks.GET("/:slug/subtasks", subtaskHandler.ListSubtasks)
			tasks.GET("/:slug/subtasks/:subtaskSlug", subtaskHandler.GetSubtask)
			tasks.PATCH("/:slug/subtasks/:subtaskSlug", subtaskHandler.UpdateSubtask)
			tasks.DELETE("/:slug/subtasks/:subtaskSlug", subtaskHandler.DeleteSubtask)
		}
	}

	return apiTestEnv{
		db:     db,
		router: r,
		mailer: mailer,
		tokens: tokens,
	}
}

// doJSON performs a JSON request against the test router. An empty
// accessToken leaves the request anonymous.
func (env apiTestEnv) doJSON(t *testing.T, method, path string, payload any, accessToken string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerAndLogin walks the full activation path and returns a session
// token: register, confirm via the emailed token, then log in.
func (env apiTestEnv) registerAndLogin(t *testing.T, username, accountType string) string {
	t.Helper()

	email := username + "@example.com"
	w := env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     username,
		"username": username,
		"email":    email,
		"password": "supersecret",
		"type":     accountType,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	confirmToken, ok := env.mailer.confirmations[email]
	require.True(t, ok)

	w = env.doJSON(t, http.MethodPost, "/api/auth/confirm-account", map[string]string{
		"token": confirmToken,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"identifier": username,
		"password":   "supersecret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// attachOrganization puts the named user into a fresh organization.
func (env apiTestEnv) attachOrganization(t *testing.T, username, orgName string) {
	t.Helper()

	org := &models.Organization{Name: orgName, IsActive: true}
	require.NoError(t, env.db.Create(org).Error)
	require.NoError(t, env.db.Model(&models.User{}).
		Where("username = ?", username).
		Update("organization_id", org.ID).Error)
}
