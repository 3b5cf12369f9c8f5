package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/capstone-backend/internal/handlers"
	"github.com/yungbote/capstone-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler          *handlers.AuthHandler
	AuthMiddleware       *middleware.AuthMiddleware
	GenerationHandler    *handlers.GenerationHandler
	VerificationHandler  *handlers.VerificationHandler
	SavedAnalysisHandler *handlers.SavedAnalysisHandler
	AllowOrigins         string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := []string{"http://localhost:3000"}
	if cfg.AllowOrigins != "" {
		allowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/logout", cfg.AuthHandler.Logout)
		api.GET("/auth/session", cfg.AuthHandler.Session)

		api.POST("/openai/issues", cfg.GenerationHandler.GenerateIssues)
		api.POST("/openai/topics", cfg.GenerationHandler.GenerateTopics)
		api.POST("/openai/analysis", cfg.GenerationHandler.GenerateAnalysis)

		api.POST("/search/data-sources", cfg.VerificationHandler.VerifyDataSources)
		api.POST("/search/references", cfg.VerificationHandler.VerifyReferences)
		api.POST("/search/verify-all", cfg.VerificationHandler.VerifyAll)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/saved-topics")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.GET("", cfg.SavedAnalysisHandler.List)
	protected.GET("/:id", cfg.SavedAnalysisHandler.Get)
	protected.POST("", cfg.SavedAnalysisHandler.Save)
	protected.DELETE("/:id", cfg.SavedAnalysisHandler.Delete)

	return router
}
