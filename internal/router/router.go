package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/koewave/koewave-backend/internal/handlers"
	"github.com/koewave/koewave-backend/internal/middleware"
	"github.com/koewave/koewave-backend/internal/models"
	"github.com/koewave/koewave-backend/internal/repositories"
	"github.com/koewave/koewave-backend/internal/services"
	"github.com/koewave/koewave-backend/internal/storage"
	"github.com/koewave/koewave-backend/internal/tts"
	"github.com/koewave/koewave-backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, uploader *storage.Uploader) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database(cfg.MongoDatabase)
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	workRepo := repositories.NewMongoWorkRepository(mongoDB)
	followRepo := repositories.NewMongoFollowRepository(mgClient, mongoDB)
	likeRepo := repositories.NewMongoLikeRepository(mgClient, mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mgClient, mongoDB)

	// --- Services ---
	feedService := services.NewFeedService(workRepo, followRepo)
	ttsClient := tts.NewClient(cfg.TTSAPIURL, cfg.TTSAPIKey)
	dispatcher := tts.NewDispatcher(ttsClient)

	// --- Protected routes (require Firebase authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Work routes
	workHandler := handlers.NewWorkHandler(workRepo)
	workHandler.RegisterWorkRoutes(api)
	log.Println("Work routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, userRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Synthesis routes
	synthesisHandler := handlers.NewSynthesisHandler(dispatcher, cfg.TTSAPIKey != "")
	synthesisHandler.RegisterSynthesisRoutes(api)
	log.Println("Synthesis routes configured.")

	// Upload routes (only when a bucket is configured)
	if uploader != nil {
		uploadHandler := handlers.NewUploadHandler(uploader)
		uploadHandler.RegisterUploadRoutes(api)
		log.Println("Upload routes configured.")
	} else {
		log.Println("Upload bucket not configured; upload routes disabled.")
	}

	log.Println("All routes configured.")
}
