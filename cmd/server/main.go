package main

import (
	"log"

	"github.com/wayra-app/backend/internal/router"
	"github.com/wayra-app/backend/pkg/config"
	"github.com/wayra-app/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize store connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize stores: %v", err)
	}
	defer db.CloseDB() // Ensure store connections are closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
