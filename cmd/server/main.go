package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/bra1695/backend-kanban/internal/config"
	"github.com/bra1695/backend-kanban/internal/database"
	"github.com/bra1695/backend-kanban/internal/handlers"
	"github.com/bra1695/backend-kanban/internal/mail"
	"github.com/bra1695/backend-kanban/internal/middleware"
	"github.com/bra1695/backend-kanban/internal/models"
	"github.com/bra1695/backend-kanban/internal/repository"
	"github.com/bra1695/backend-kanban/internal/services"
	"github.com/bra1695/backend-kanban/internal/token"
	"github.com/bra1695/backend-kanban/internal/upload"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// External collaborators
	mailer, err := mail.NewSMTPMailer(mail.Options{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		From:        cfg.MailFrom,
		FrontendURL: cfg.FrontendURL,
	})
	if err != nil {
		log.Fatalf("Failed to create mailer: %v", err)
	}

	uploader, err := upload.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		log.Fatalf("Failed to create uploader: %v", err)
	}

	// Token service
	tokens := token.NewService(cfg.JWTSecret, cfg.SessionTTL)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, tokens, mailer)
	userService := services.NewUserService(userRepo, uploader)
	orgService := services.NewOrganizationService(orgRepo)
	boardService := services.NewBoardService(boardRepo)
	columnService := services.NewColumnService(boardRepo)
	taskService := services.NewTaskService(taskRepo, boardRepo, uploader)
	subtaskService := services.NewSubtaskService(taskRepo, uploader, taskService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	boardHandler := handlers.NewBoardHandler(boardService)
	columnHandler := handlers.NewColumnHandler(columnService)
	taskHandler := handlers.NewTaskHandler(taskService)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskService)

	r := gin.Default()

	requireAuth := middleware.RequireAuth(tokens, userRepo)
	adminOnly := middleware.RequireType(models.UserTypeAdmin, models.UserTypeSuperadmin)
	superadminOnly := middleware.RequireType(models.UserTypeSuperadmin)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Kanban API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/confirm-account", authHandler.ConfirmAccount)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", requireAuth, userHandler.GetCurrentUser)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", adminOnly, userHandler.ListUsers)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", superadminOnly, userHandler.DeleteUser)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(requireAuth)
		{
			orgs.POST("", adminOnly, orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.GET("/:id", orgHandler.GetOrganization)
			orgs.PATCH("/:id", adminOnly, orgHandler.UpdateOrganization)
			orgs.DELETE("/:id", superadminOnly, orgHandler.DeleteOrganization)
		}

		// Board routes (protected), columns nested under their board
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

		// Column routes addressed by column slug
		columns := api.Group("/columns")
		columns.Use(requireAuth)
		{
			columns.PATCH("/:columnSlug", columnHandler.UpdateColumn)
			columns.DELETE("/:columnSlug", columnHandler.DeleteColumn)
			columns.POST("/:columnSlug/tasks", taskHandler.CreateTask)
		}

		// Task routes (protected)
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

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
