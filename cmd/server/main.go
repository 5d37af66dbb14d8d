package main

import (
	"context"
	"log"

	"github.com/koewave/koewave-backend/internal/router"
	"github.com/koewave/koewave-backend/internal/storage"
	"github.com/koewave/koewave-backend/pkg/config"
	"github.com/koewave/koewave-backend/pkg/firebase"
	"github.com/koewave/koewave-backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Initialize the upload-URL issuer; uploads are optional in development
	var uploader *storage.Uploader
	if cfg.UploadBucket != "" {
		uploader, err = storage.NewUploader(ctx, cfg.UploadBucket)
		if err != nil {
			log.Fatalf("Failed to initialize storage uploader: %v", err)
		}
		defer uploader.Close()
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseApp.AuthClient, uploader)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
