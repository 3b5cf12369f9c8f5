package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/capstone-backend/internal/logger"
	"github.com/yungbote/capstone-backend/internal/platform/apierr"
	"github.com/yungbote/capstone-backend/internal/services"
)

type GenerationHandler struct {
	log               *logger.Logger
	generationService services.GenerationService
}

func NewGenerationHandler(log *logger.Logger, generationService services.GenerationService) *GenerationHandler {
	handlerLog := log.With("handler", "GenerationHandler")
	return &GenerationHandler{log: handlerLog, generationService: generationService}
}

func (gh *GenerationHandler) GenerateIssues(c *gin.Context) {
	var req struct {
		Country  string `json:"country" binding:"required"`
		Interest string `json:"interest" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid request: country and interest are required")
		return
	}

	gh.log.Info("Generating policy issues", "country", req.Country, "interest", req.Interest)

	result, err := gh.generationService.GenerateIssues(c.Request.Context(), req.Country, req.Interest)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	gh.log.Info("Generated policy issues", "count", len(result.PolicyIssues))
	RespondOK(c, result)
}

func (gh *GenerationHandler) GenerateTopics(c *gin.Context) {
	var req struct {
		Country        string   `json:"country" binding:"required"`
		Issue          string   `json:"issue" binding:"required"`
		ExistingTopics []string `json:"existingTopics"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid request: country and issue are required")
		return
	}

	gh.log.Info("Generating topics", "country", req.Country, "issue", req.Issue)

	result, err := gh.generationService.GenerateTopics(c.Request.Context(), req.Country, req.Issue, req.ExistingTopics)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	gh.log.Info("Generated topics", "count", len(result.Topics))
	RespondOK(c, result)
}

func (gh *GenerationHandler) GenerateAnalysis(c *gin.Context) {
	var req struct {
		Country    string `json:"country" binding:"required"`
		Issue      string `json:"issue" binding:"required"`
		TopicTitle string `json:"topicTitle" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid request: country, issue, and topicTitle are required")
		return
	}

	gh.log.Info("Generating analysis", "topic_title", req.TopicTitle)

	result, err := gh.generationService.GenerateAnalysis(c.Request.Context(), req.Country, req.Issue, req.TopicTitle)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	RespondOK(c, result)
}
