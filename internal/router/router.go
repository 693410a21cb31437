package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/client"
	"taskboard-api/internal/config"
	"taskboard-api/internal/handler"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Sessions       *auth.SessionCodec
	JWTSecret      string
	TokenTTL       time.Duration
	BasePath       string
	AllowedOrigins []string
	Storage        client.StorageClient
	Cache          *redis.Client
	Admin          config.AdminConfig
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	projectRepo := repository.NewProjectRepository(cfg.DB)
	groupRepo := repository.NewTaskGroupRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	statsRepo := repository.NewStatsRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)

	// Services
	authService := service.NewAuthService(userRepo, cfg.Admin, cfg.Metrics, cfg.Logger)
	projectService := service.NewProjectService(projectRepo, userRepo, cfg.Metrics, cfg.Logger)
	taskService := service.NewTaskService(taskRepo, groupRepo, commentRepo, projectRepo, userRepo, attachmentRepo, cfg.Metrics, cfg.Logger)
	statsService := service.NewStatsService(statsRepo, cfg.Cache, cfg.Logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, taskRepo, projectRepo, cfg.Storage, cfg.Metrics, cfg.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Sessions, cfg.JWTSecret, cfg.TokenTTL)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	statsHandler := handler.NewStatsHandler(statsService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	systemHandler := handler.NewSystemHandler(cfg.DB, authService, cfg.Logger)

	// Unauthenticated surface
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", systemHandler.Health)

	api := r.Group(cfg.BasePath)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	requireAuth := middleware.Auth(cfg.Sessions, cfg.JWTSecret)

	authed := api.Group("")
	authed.Use(requireAuth)
	{
		authed.POST("/auth/token", authHandler.Token)
		authed.GET("/auth/check-admin", authHandler.CheckAdmin)
		authed.GET("/auth/me", authHandler.Me)
		authed.GET("/users", authHandler.ListUsers)

		projects := authed.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:projectId", projectHandler.GetProject)
			projects.PUT("/:projectId", projectHandler.UpdateProject)
			projects.DELETE("/:projectId", projectHandler.DeleteProject)
			projects.POST("/:projectId/collaborators", projectHandler.AddCollaborator)
			projects.DELETE("/:projectId/collaborators/:userId", projectHandler.RemoveCollaborator)

			projects.GET("/:projectId/groups", taskHandler.ListGroups)
			projects.POST("/:projectId/groups", taskHandler.CreateGroup)
		}

		tasks := authed.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:taskId", taskHandler.GetTask)
			tasks.PUT("/:taskId", taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", taskHandler.DeleteTask)
			tasks.PATCH("/:taskId/status", taskHandler.UpdateStatus)
			tasks.PATCH("/:taskId/move", taskHandler.MoveTask)
			tasks.POST("/:taskId/subtasks", taskHandler.CreateSubtask)
			tasks.GET("/:taskId/comments", taskHandler.ListComments)
			tasks.POST("/:taskId/comments", taskHandler.AddComment)
			tasks.GET("/:taskId/attachments", attachmentHandler.ListForTask)
		}

		attachments := authed.Group("/attachments")
		{
			attachments.POST("/presign", attachmentHandler.PresignUpload)
			attachments.DELETE("/:attachmentId", attachmentHandler.DeleteAttachment)
		}

		stats := authed.Group("/stats")
		{
			stats.GET("/projects", statsHandler.ProjectStatistics)
			stats.GET("/tasks", statsHandler.TaskStatistics)
			stats.GET("/team", statsHandler.TeamStatistics)
		}

		authed.GET("/system/fix-database", systemHandler.FixDatabase)
	}

	return r
}
