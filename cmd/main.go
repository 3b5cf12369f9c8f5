package main

import (
	"fmt"
	"os"
	"time"

	"github.com/yungbote/capstone-backend/internal/catalog"
	openaiclient "github.com/yungbote/capstone-backend/internal/clients/openai"
	"github.com/yungbote/capstone-backend/internal/clients/serper"
	"github.com/yungbote/capstone-backend/internal/db"
	"github.com/yungbote/capstone-backend/internal/handlers"
	"github.com/yungbote/capstone-backend/internal/logger"
	"github.com/yungbote/capstone-backend/internal/middleware"
	"github.com/yungbote/capstone-backend/internal/repos"
	"github.com/yungbote/capstone-backend/internal/server"
	"github.com/yungbote/capstone-backend/internal/services"
	"github.com/yungbote/capstone-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	sessionSecretKey := utils.GetEnv("SESSION_SECRET_KEY", "defaultsecret", log)
	sessionTTL := utils.GetEnvAsInt("SESSION_TTL", 7*24*60*60, log)
	corsAllowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	studentRepo := repos.NewStudentRepo(thePG, log)
	savedAnalysisRepo := repos.NewSavedAnalysisRepo(thePG, log)

	// Catalog
	trustedCatalog, err := catalog.Load()
	if err != nil {
		log.Error("Could not load trusted source catalog", "error", err)
		os.Exit(1)
	}
	log.Info("Loaded trusted source catalog", "entries", trustedCatalog.Len())

	// Clients
	// The completion client handle is created once here and injected; request
	// handlers share this single instance for the process lifetime.
	openaiClient, err := openaiclient.NewClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	serperClient := serper.NewClient(log)

	// Services
	log.Info("Setting up services from main...")
	generationService := services.NewGenerationService(log, openaiClient)
	verificationService := services.NewVerificationService(log, trustedCatalog, serperClient)
	authService := services.NewAuthService(log, studentRepo, sessionSecretKey, time.Duration(sessionTTL)*time.Second)
	savedAnalysisService := services.NewSavedAnalysisService(log, savedAnalysisRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(log, authService)
	generationHandler := handlers.NewGenerationHandler(log, generationService)
	verificationHandler := handlers.NewVerificationHandler(log, verificationService)
	savedAnalysisHandler := handlers.NewSavedAnalysisHandler(log, savedAnalysisService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:          authHandler,
		AuthMiddleware:       authMiddleware,
		GenerationHandler:    generationHandler,
		VerificationHandler:  verificationHandler,
		SavedAnalysisHandler: savedAnalysisHandler,
		AllowOrigins:         corsAllowOrigins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
