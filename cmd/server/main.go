package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/photoclub/club-management-api/internal/auth"
	"github.com/photoclub/club-management-api/internal/config"
	"github.com/photoclub/club-management-api/internal/database"
	"github.com/photoclub/club-management-api/internal/handlers"
	"github.com/photoclub/club-management-api/internal/logging"
	"github.com/photoclub/club-management-api/internal/middleware"
	"github.com/photoclub/club-management-api/internal/realtime"
	"github.com/photoclub/club-management-api/internal/repository"
	"github.com/photoclub/club-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logging.Init(cfg.LogFile, cfg.GinMode != "release")

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	hub := realtime.NewHub()

	// Repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	workRepo := repository.NewWorkRepository(database.GetDB())
	assetRepo := repository.NewAssetRepository(database.GetDB())

	// Services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, workRepo, hub)
	workService := services.NewWorkService(workRepo)
	assetService := services.NewAssetService(assetRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	workHandler := handlers.NewWorkHandler(workService)
	assetHandler := handlers.NewAssetHandler(assetService)
	wsHandler := handlers.NewWSHandler(hub)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Club Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", requireAuth, authHandler.Logout)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
			authRoutes.PUT("/me", requireAuth, authHandler.UpdateProfile)
			authRoutes.PUT("/me/password", requireAuth, authHandler.ChangePassword)
		}

		// User management routes
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/stats", userHandler.GetUserStats)

			admin := users.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("", userHandler.CreateUser)
				admin.GET("", userHandler.ListUsers)
				admin.PUT("/:id/role", userHandler.UpdateRole)
				admin.PUT("/:id/status", userHandler.UpdateStatus)
				admin.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Task routes
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/submit", middleware.RequireMemberOrAdmin(), taskHandler.SubmitWork)

			admin := tasks.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("", taskHandler.CreateTask)
				admin.PUT("/:id", taskHandler.UpdateTask)
				admin.DELETE("/:id", taskHandler.DeleteTask)
				admin.POST("/:id/assign", taskHandler.AssignTask)
				admin.DELETE("/:id/assign/:userId", taskHandler.UnassignTask)
				admin.PUT("/:id/assignments/:userId", taskHandler.UpdateAssignmentStatus)
				admin.POST("/:id/publish", taskHandler.PublishTask)
				admin.POST("/:id/complete", taskHandler.CompleteTask)
				admin.POST("/:id/cancel", taskHandler.CancelTask)
				admin.GET("/stats/overview", taskHandler.GetTaskStats)
			}
		}

		// Work routes
		works := api.Group("/works")
		works.Use(requireAuth)
		{
			works.GET("", workHandler.ListWorks)
			works.GET("/:id", workHandler.GetWork)
			works.POST("", middleware.RequireMemberOrAdmin(), workHandler.CreateWork)
			works.PUT("/:id", workHandler.UpdateWork)
			works.DELETE("/:id", workHandler.DeleteWork)
			works.POST("/:id/like", workHandler.ToggleLike)
			works.POST("/:id/comments", workHandler.AddComment)
			works.DELETE("/:id/comments/:commentId", workHandler.RemoveComment)

			admin := works.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.PUT("/:id/review", workHandler.ReviewWork)
				admin.PUT("/:id/featured", workHandler.SetFeatured)
			}
		}

		// Asset routes
		assets := api.Group("/assets")
		assets.Use(requireAuth)
		{
			assets.GET("", assetHandler.ListAssets)
			assets.GET("/:id", assetHandler.GetAsset)

			admin := assets.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("", assetHandler.CreateAsset)
				admin.PUT("/:id", assetHandler.UpdateAsset)
				admin.DELETE("/:id", assetHandler.DeleteAsset)
				admin.POST("/:id/checkout", assetHandler.CheckoutAsset)
				admin.POST("/:id/return", assetHandler.ReturnAsset)
				admin.POST("/:id/maintenance", assetHandler.AddMaintenance)
				admin.GET("/stats/overview", assetHandler.GetAssetStats)
			}
		}

		// Realtime notifications
		api.GET("/ws", requireAuth, wsHandler.Serve)
	}

	// Start server
	logging.Logger.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
