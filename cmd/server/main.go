package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/bootstrap"
	"github.com/sevasetu/volunteerhub/internal/config"
	"github.com/sevasetu/volunteerhub/internal/handler"
	"github.com/sevasetu/volunteerhub/internal/metrics"
	"github.com/sevasetu/volunteerhub/internal/middleware"
	"github.com/sevasetu/volunteerhub/internal/model"
	"github.com/sevasetu/volunteerhub/internal/repository"
	"github.com/sevasetu/volunteerhub/internal/service"
	"github.com/sevasetu/volunteerhub/pkg/database"
	"github.com/sevasetu/volunteerhub/pkg/logger"
	"github.com/sevasetu/volunteerhub/pkg/storage"
)

func main() {
	cfg := config.Load()

	zlog, closeLogger, err := logger.Init(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closeLogger()

	db := database.Connect()
	if err := migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		zlog.Fatal("failed to seed roles", zap.Error(err))
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdmin(db); err != nil {
			zlog.Fatal("failed to seed admin account", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zlog.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
	} else {
		zlog.Warn("REDIS_URL not set, stats cache and live notifications disabled")
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	} else {
		zlog.Warn("MEILISEARCH_HOST not set, event search disabled")
	}

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		zlog.Warn("cloudinary unavailable, avatar uploads disabled", zap.Error(err))
	}

	volunteerRepo := repository.NewVolunteerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	eventRepo := repository.NewEventRepository(db)
	participationRepo := repository.NewParticipationRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	searchService := service.NewSearchService(meiliClient)
	notificationService := service.NewNotificationService(notificationRepo, redisClient)
	roleService := service.NewRoleService(roleRepo, volunteerRepo)

	authHandler := handler.NewAuthHandler(service.NewAuthService(volunteerRepo, roleRepo))
	volunteerHandler := handler.NewVolunteerHandler(service.NewVolunteerService(volunteerRepo, imageStorage), roleService)
	categoryHandler := handler.NewCategoryHandler(service.NewCategoryService(categoryRepo))
	eventHandler := handler.NewEventHandler(
		service.NewEventService(eventRepo, categoryRepo, participationRepo, searchService),
		searchService,
	)
	approvalHandler := handler.NewApprovalHandler(
		service.NewApprovalService(participationRepo, volunteerRepo, notificationService),
	)
	reportHandler := handler.NewReportHandler(service.NewReportService(reportRepo, redisClient))
	roleHandler := handler.NewRoleHandler(roleService)
	notificationHandler := handler.NewNotificationHandler(notificationService, redisClient)
	exportHandler := handler.NewExportHandler(service.NewExportService(participationRepo))

	authMiddleware := middleware.NewAuthMiddleware(roleService)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/me", volunteerHandler.GetMe)
		api.PUT("/me", volunteerHandler.UpdateProfile)
		api.POST("/me/avatar", volunteerHandler.UploadAvatar)

		api.GET("/categories", categoryHandler.GetAllCategories)

		api.GET("/events", eventHandler.ListEvents)
		api.GET("/events/search", eventHandler.SearchEvents)
		api.GET("/events/:id", eventHandler.GetEvent)
		api.POST("/events/:id/register", eventHandler.RegisterParticipation)

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.GET("/unread", notificationHandler.UnreadCount)
			notifications.GET("/stream", notificationHandler.Stream)
			notifications.PUT("/read", notificationHandler.MarkAllAsRead)
			notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
		}

		head := api.Group("")
		head.Use(authMiddleware.RequireLevel(model.LevelHead))
		{
			head.POST("/events", eventHandler.CreateEvent)
			head.PUT("/events/:id", eventHandler.UpdateEvent)
			head.DELETE("/events/:id", eventHandler.DeleteEvent)
			head.PUT("/participations/:id/attendance", eventHandler.MarkAttendance)

			head.GET("/approvals/pending", approvalHandler.GetPendingApprovals)
			head.PUT("/approvals/:id/approve", approvalHandler.ApproveHours)
			head.PUT("/approvals/:id/reject", approvalHandler.RejectHours)
			head.POST("/approvals/bulk-approve", approvalHandler.BulkApproveHours)
			head.PUT("/approvals/:id/reset", approvalHandler.ResetApproval)

			head.GET("/reports/stats", reportHandler.GetDashboardStats)
			head.GET("/reports/monthly-hours", reportHandler.GetMonthlyHours)
			head.GET("/reports/trends", reportHandler.GetMonthlyTrends)
			head.GET("/reports/ending-soon", reportHandler.GetEventsEndingSoon)
			head.GET("/reports/top-events", reportHandler.GetTopEventsByImpact)

			head.GET("/volunteers", volunteerHandler.ListVolunteers)
			head.GET("/volunteers/:id", volunteerHandler.GetVolunteer)
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireLevel(model.LevelAdmin))
		{
			admin.POST("/categories", categoryHandler.CreateCategory)
			admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
			admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

			admin.PUT("/volunteers/:id", volunteerHandler.UpdateProfile)
			admin.DELETE("/volunteers/:id", volunteerHandler.Deactivate)

			admin.GET("/roles", roleHandler.ListDefinitions)
			admin.POST("/roles/assign", roleHandler.AssignRole)
			admin.POST("/roles/revoke", roleHandler.RevokeRole)

			admin.GET("/reports/hours.xlsx", exportHandler.ExportApprovedHours)
		}
	}

	zlog.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited with error", zap.Error(err))
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.RoleDefinition{},
		&model.Volunteer{},
		&model.UserRole{},
		&model.EventCategory{},
		&model.Event{},
		&model.EventParticipation{},
		&model.Notification{},
	)
}
