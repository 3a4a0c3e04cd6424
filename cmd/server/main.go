package main

import (
	"context"
	"log"

	"github.com/artstack/creative-showcase/internal/config"
	"github.com/artstack/creative-showcase/internal/database"
	"github.com/artstack/creative-showcase/internal/handler"
	"github.com/artstack/creative-showcase/internal/middleware"
	"github.com/artstack/creative-showcase/internal/repository"
	"github.com/artstack/creative-showcase/internal/service"
	"github.com/artstack/creative-showcase/internal/storage"
	"github.com/artstack/creative-showcase/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Media storage (MinIO)
	blobStore, err := storage.NewMinioStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	artworkRepo := repository.NewArtworkRepository(database.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	artworkService := service.NewArtworkService(artworkRepo, userRepo, blobStore)
	userService := service.NewUserService(userRepo, artworkRepo, blobStore)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	artworkHandler := handler.NewArtworkHandler(artworkService)
	userHandler := handler.NewUserHandler(userService, artworkService)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		limiter := middleware.NewRateLimiter(redis.NewClient(opts), middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			BlockTime:   cfg.RateLimitBlockTime,
		})
		router.Use(limiter.Middleware())
	}

	api := router.Group("/api")
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	// Auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	protected.GET("/auth/me", authHandler.Me)

	// Artworks
	api.GET("/artwork/featured", artworkHandler.Featured)
	api.GET("/artwork/search", artworkHandler.Search)
	api.GET("/artwork/:id", artworkHandler.GetByID)
	protected.POST("/artwork/upload", artworkHandler.Upload)
	protected.GET("/artwork/dashboard", artworkHandler.Dashboard)
	protected.DELETE("/artwork/:id", artworkHandler.Delete)
	protected.POST("/artwork/:id/like", artworkHandler.ToggleLike)
	protected.POST("/artwork/:id/comments", artworkHandler.PostComment)
	protected.POST("/artwork/:id/comments/:commentId/like", artworkHandler.ToggleCommentLike)

	// Users
	api.GET("/users/profile/:username", userHandler.GetProfile)
	api.GET("/users/search", userHandler.Search)
	api.GET("/users/:id/artworks", userHandler.ListArtworks)
	protected.GET("/users/me", userHandler.Me)
	protected.PUT("/users/profile", userHandler.UpdateProfile)
	protected.PUT("/users/profile/picture", userHandler.UploadProfilePicture)
	protected.PUT("/users/profile/cover", userHandler.UploadCoverImage)
	protected.DELETE("/users/profile/picture", userHandler.RemoveProfilePicture)
	protected.DELETE("/users/profile/cover", userHandler.RemoveCoverImage)
	protected.PUT("/users/account", userHandler.UpdateAccount)
	protected.DELETE("/users/account", userHandler.DeleteAccount)

	// Start server
	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
