package main

import (
	"log"

	"github.com/forumhq/backend/internal/config"
	"github.com/forumhq/backend/internal/database"
	"github.com/forumhq/backend/internal/handler"
	"github.com/forumhq/backend/internal/middleware"
	"github.com/forumhq/backend/internal/repository"
	"github.com/forumhq/backend/internal/service"
	"github.com/forumhq/backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Seed the admin account if absent
	admin, created, err := database.EnsureAdmin(database.DB, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to seed admin account", zap.Error(err))
	}
	if created {
		logger.Log.Info("Admin account created", zap.String("username", admin.Username))
	} else {
		logger.Log.Info("Admin account already exists", zap.String("username", admin.Username))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	postRepo := repository.NewPostRepository(database.DB)
	commentRepo := repository.NewCommentRepository(database.DB)
	reactionRepo := repository.NewReactionRepository(database.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, service.PasswordPolicy{
		MinLength:    cfg.PasswordMinLength,
		RequireMixed: cfg.PasswordRequireMixed,
	})
	postService := service.NewPostService(postRepo, reactionRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	reactionService := service.NewReactionService(reactionRepo, postRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	reactionHandler := handler.NewReactionHandler(reactionService)
	adminHandler := handler.NewAdminHandler(authService)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))

	// IP rate limiting, when Redis is configured
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		limiter := middleware.NewRateLimiter(redis.NewClient(opt), middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
		})
		router.Use(limiter.Middleware())
	}

	// Public routes
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/posts", middleware.OptionalAuthMiddleware(cfg.JWTSecret), postHandler.List)
	router.GET("/comments/:postId", commentHandler.ListByPost)

	// Authenticated routes
	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.POST("/posts", postHandler.Create)
		authed.PUT("/posts/:id", postHandler.Update)
		authed.DELETE("/posts/:id", postHandler.Delete)
		authed.POST("/comments", commentHandler.Create)
		authed.DELETE("/comments/:id", commentHandler.Delete)
		authed.POST("/likes", reactionHandler.React)
	}

	// Admin routes
	adminRoutes := router.Group("/users")
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminMiddleware())
	{
		adminRoutes.GET("", adminHandler.ListUsers)
		adminRoutes.DELETE("/:id", adminHandler.DeleteUser)
	}

	logger.Log.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(cfg.ServerPort); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
