package router

import (
	"fmt"
	"log"
	"net/http"

	"github.com/wayra-app/backend/internal/handlers"
	"github.com/wayra-app/backend/internal/middleware"
	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/wayra-app/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures global Echo middleware and the error shape
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = httpErrorHandler
	log.Println("Global middleware configured.")
}

// httpErrorHandler renders every failure as {"error": "..."}
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = fmt.Sprintf("%v", he.Message)
		}
	}

	if c.Response().Committed {
		return
	}
	if err := c.JSON(code, echo.Map{"error": msg}); err != nil {
		c.Logger().Error(err)
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *config.DB, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.PostRecord{},
		&models.TripGoalFollow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRecordRepo := repositories.NewPostgresPostRecordRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	destinationRepo := repositories.NewMongoDestinationRepository(mongoDB)
	tripGoalRepo := repositories.NewMongoTripGoalRepository(mongoDB)
	sessionRepo := repositories.NewRedisSessionRepository(db.Redis, cfg.SessionTTL)
	postCacheRepo := repositories.NewRedisPostCacheRepository(db.Redis, cfg.PostCacheTTL)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(userRepo, sessionRepo)
	authHandler.RegisterAuthRoutes(e.Group(""))
	log.Println("Auth routes configured.")

	// --- Scheduler routes (static bearer token) ---
	scheduler := e.Group("")
	scheduler.Use(middleware.SchedulerAuth(cfg.SchedulerToken))
	cacheHandler := handlers.NewCacheHandler(postRepo, postCacheRepo, cfg.PopularThreshold)
	cacheHandler.RegisterCacheRoutes(scheduler)
	log.Println("Cache refresh route configured.")

	// --- Protected routes (require a valid session) ---
	api := e.Group("")
	api.Use(middleware.SessionAuth(sessionRepo, userRepo))
	log.Println("Session authentication middleware applied.")

	postHandler := handlers.NewPostHandler(postRepo, postRecordRepo, destinationRepo, postCacheRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	destinationHandler := handlers.NewDestinationHandler(destinationRepo)
	destinationHandler.RegisterDestinationRoutes(api)
	log.Println("Destination routes configured.")

	reactionHandler := handlers.NewReactionHandler(postRepo, destinationRepo)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	commentHandler := handlers.NewCommentHandler(postRepo, destinationRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	tripGoalHandler := handlers.NewTripGoalHandler(tripGoalRepo, followRepo, destinationRepo)
	tripGoalHandler.RegisterTripGoalRoutes(api)
	log.Println("Trip goal routes configured.")

	log.Println("All routes configured.")
}
