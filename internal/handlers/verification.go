package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/capstone-backend/internal/logger"
	"github.com/yungbote/capstone-backend/internal/platform/apierr"
	"github.com/yungbote/capstone-backend/internal/services"
)

type VerificationHandler struct {
	log                 *logger.Logger
	verificationService services.VerificationService
}

func NewVerificationHandler(log *logger.Logger, verificationService services.VerificationService) *VerificationHandler {
	handlerLog := log.With("handler", "VerificationHandler")
	return &VerificationHandler{log: handlerLog, verificationService: verificationService}
}

func (vh *VerificationHandler) VerifyDataSources(c *gin.Context) {
	var req struct {
		Country       string   `json:"country" binding:"required"`
		Topic         string   `json:"topic" binding:"required"`
		AISuggestions []string `json:"aiSuggestions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid request")
		return
	}

	vh.log.Info("Verifying data sources", "country", req.Country, "topic", req.Topic)

	result := vh.verificationService.VerifyDataSources(c.Request.Context(), req.Country, req.Topic, req.AISuggestions)

	vh.log.Info("Verified data sources",
		"verified", len(result.VerifiedSources),
		"unverified", len(result.UnverifiedSuggestions),
	)
	RespondOK(c, result)
}

func (vh *VerificationHandler) VerifyReferences(c *gin.Context) {
	var req struct {
		Country       string   `json:"country" binding:"required"`
		Topic         string   `json:"topic" binding:"required"`
		AISuggestions []string `json:"aiSuggestions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid request")
		return
	}

	vh.log.Info("Verifying references", "country", req.Country, "topic", req.Topic)

	result := vh.verificationService.VerifyReferences(c.Request.Context(), req.Country, req.Topic, req.AISuggestions)

	vh.log.Info("Verified references",
		"verified", len(result.VerifiedReferences),
		"unverified", len(result.UnverifiedSuggestions),
	)
	RespondOK(c, result)
}

// VerifyAll runs both verification passes concurrently for a generated
// analysis and returns the joined result.
func (vh *VerificationHandler) VerifyAll(c *gin.Context) {
	var req struct {
		Country               string   `json:"country" binding:"required"`
		Topic                 string   `json:"topic" binding:"required"`
		DataSourceSuggestions []string `json:"dataSourceSuggestions"`
		ReferenceSuggestions  []string `json:"referenceSuggestions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid request")
		return
	}

	vh.log.Info("Verifying analysis", "country", req.Country, "topic", req.Topic)

	result := vh.verificationService.VerifyAll(c.Request.Context(), req.Country, req.Topic, req.DataSourceSuggestions, req.ReferenceSuggestions)
	RespondOK(c, result)
}
