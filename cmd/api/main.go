// @title Induction Training API
// @version 1.0
// @description Backend for employee induction training: courses with video chapters and quizzes.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sanjaykhatri/induction-backend/internal/adapter"
	"github.com/sanjaykhatri/induction-backend/internal/adapter/mail"
	"github.com/sanjaykhatri/induction-backend/internal/adapter/storage"
	"github.com/sanjaykhatri/induction-backend/internal/cache"
	"github.com/sanjaykhatri/induction-backend/internal/config"
	"github.com/sanjaykhatri/induction-backend/internal/database"
	"github.com/sanjaykhatri/induction-backend/internal/handler"
	"github.com/sanjaykhatri/induction-backend/internal/logger"
	"github.com/sanjaykhatri/induction-backend/internal/middleware"
	"github.com/sanjaykhatri/induction-backend/internal/repository"
	"github.com/sanjaykhatri/induction-backend/internal/service"
	"github.com/sanjaykhatri/induction-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with timing.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	fileStore, err := storage.NewLocalStore(cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to initialize file store", zap.Error(err))
	}
	notifier := mail.NewSendGridNotifier(cfg.Notification)

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db)
	inductionRepository := repository.NewSQLXInductionRepository(db)
	submissionRepository := repository.NewSQLXSubmissionRepository(db)
	videoRepository := repository.NewSQLXVideoCompletionRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	authService, err := service.NewAuthService(userRepository, cacheAdapter, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	inductionService := service.NewInductionService(inductionRepository, fileStore, cacheAdapter, cfg.Cache)
	submissionService := service.NewSubmissionService(
		submissionRepository,
		inductionRepository,
		videoRepository,
		userRepository,
		notifier,
		inductionService.ResolveVideoURL,
	)
	videoService := service.NewVideoService(videoRepository, submissionRepository, inductionRepository)
	progressService := service.NewProgressService(submissionRepository, videoRepository, inductionRepository, userRepository)
	importService := service.NewImportService(inductionRepository, txManager)
	adminService := service.NewAdminService(userRepository)

	validator := validation.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	inductionHandler := handler.NewInductionHandler(inductionService)
	submissionHandler := handler.NewSubmissionHandler(submissionService, validator)
	videoHandler := handler.NewVideoHandler(videoService, validator)
	progressHandler := handler.NewProgressHandler(progressService)
	adminInductionHandler := handler.NewAdminInductionHandler(inductionService, importService)
	adminHandler := handler.NewAdminHandler(submissionService, adminService, validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    100 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Static("/media", cfg.Storage.BasePath)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/admin/login", authHandler.AdminLogin)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", middleware.Protected(authService), authHandler.Logout)
	auth.Get("/me", middleware.Protected(authService), authHandler.Me)

	// Employee routes
	protected := api.Group("", middleware.Protected(authService))
	protected.Get("/inductions", inductionHandler.ListActive)
	protected.Post("/inductions/:induction_id/start", submissionHandler.Start)
	protected.Get("/inductions/:induction_id/completed", submissionHandler.GetCompleted)

	protected.Get("/submissions/:id", submissionHandler.Get)
	protected.Post("/submissions/:id/answers", submissionHandler.SubmitAnswers)
	protected.Post("/submissions/:id/complete", submissionHandler.Complete)
	protected.Get("/submissions/:id/last-unanswered", submissionHandler.GetLastUnanswered)

	protected.Post("/chapters/:chapter_id/video-progress", videoHandler.ReportProgress)
	protected.Post("/chapters/:chapter_id/video-completed", videoHandler.MarkCompleted)
	protected.Get("/chapters/:chapter_id/video-completion", videoHandler.CheckCompletion)

	protected.Get("/progress", progressHandler.Index)
	protected.Get("/progress/:id", progressHandler.Show)

	// Admin routes
	admin := api.Group("/admin", middleware.Protected(authService), middleware.RequireAdmin())
	admin.Get("/inductions", adminInductionHandler.ListInductions)
	admin.Post("/inductions", adminInductionHandler.CreateInduction)
	admin.Post("/inductions/import", adminInductionHandler.ImportCSV)
	admin.Get("/inductions/:id", adminInductionHandler.GetInduction)
	admin.Put("/inductions/:id", adminInductionHandler.UpdateInduction)
	admin.Delete("/inductions/:id", adminInductionHandler.DeleteInduction)
	admin.Post("/inductions/:id/reorder", adminInductionHandler.ReorderInduction)
	admin.Get("/inductions/:id/chapters", adminInductionHandler.ListChapters)
	admin.Post("/inductions/:id/chapters", adminInductionHandler.CreateChapter)

	admin.Put("/chapters/:id", adminInductionHandler.UpdateChapter)
	admin.Delete("/chapters/:id", adminInductionHandler.DeleteChapter)
	admin.Post("/chapters/:id/reorder", adminInductionHandler.ReorderChapter)
	admin.Get("/chapters/:id/questions", adminInductionHandler.ListQuestions)
	admin.Post("/chapters/:id/questions", adminInductionHandler.CreateQuestion)

	admin.Put("/questions/:id", adminInductionHandler.UpdateQuestion)
	admin.Delete("/questions/:id", adminInductionHandler.DeleteQuestion)
	admin.Post("/questions/:id/reorder", adminInductionHandler.ReorderQuestion)

	admin.Get("/submissions", adminHandler.ListSubmissions)
	admin.Get("/submissions/:id/review", adminHandler.ReviewSubmission)

	// Admin account management is restricted to super admins.
	admins := admin.Group("/admins", middleware.RequireSuperAdmin())
	admins.Get("/", adminHandler.ListAdmins)
	admins.Post("/", adminHandler.CreateAdmin)
	admins.Put("/:id", adminHandler.UpdateAdmin)
	admins.Delete("/:id", adminHandler.RemoveAdmin)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
