package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/capstone-backend/internal/logger"
	"github.com/yungbote/capstone-backend/internal/platform/apierr"
	"github.com/yungbote/capstone-backend/internal/requestdata"
	"github.com/yungbote/capstone-backend/internal/services"
	"github.com/yungbote/capstone-backend/internal/types"
)

type SavedAnalysisHandler struct {
	log     *logger.Logger
	service services.SavedAnalysisService
}

func NewSavedAnalysisHandler(log *logger.Logger, service services.SavedAnalysisService) *SavedAnalysisHandler {
	handlerLog := log.With("handler", "SavedAnalysisHandler")
	return &SavedAnalysisHandler{log: handlerLog, service: service}
}

func (sh *SavedAnalysisHandler) List(c *gin.Context) {
	studentID, ok := sh.studentID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	country := c.Query("country")

	sh.log.Info("Fetching saved analyses", "student_id", studentID, "page", page)

	result, err := sh.service.List(c.Request.Context(), studentID, page, limit, country)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (sh *SavedAnalysisHandler) Get(c *gin.Context) {
	studentID, ok := sh.studentID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, apierr.CodeNotFound, "Analysis not found")
		return
	}

	result, err := sh.service.Get(c.Request.Context(), studentID, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

type saveAnalysisRequest struct {
	Country              string                     `json:"country" binding:"required"`
	Interest             string                     `json:"interest" binding:"required"`
	SelectedIssue        string                     `json:"selected_issue" binding:"required"`
	IssueImportanceScore *float64                   `json:"issue_importance_score"`
	IssueFrequencyScore  *float64                   `json:"issue_frequency_score"`
	TopicTitle           string                     `json:"topic_title" binding:"required"`
	AnalysisData         *types.AnalysisData        `json:"analysis_data" binding:"required"`
	VerifiedDataSources  []types.VerifiedDataSource `json:"verified_data_sources"`
	VerifiedReferences   []types.VerifiedReference  `json:"verified_references"`
}

func (sh *SavedAnalysisHandler) Save(c *gin.Context) {
	studentID, ok := sh.studentID(c)
	if !ok {
		return
	}

	var req saveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid request body")
		return
	}

	input := &services.SaveAnalysisInput{
		Country:              req.Country,
		Interest:             req.Interest,
		SelectedIssue:        req.SelectedIssue,
		IssueImportanceScore: req.IssueImportanceScore,
		IssueFrequencyScore:  req.IssueFrequencyScore,
		TopicTitle:           req.TopicTitle,
	}
	var err error
	if input.AnalysisData, err = marshalJSON(req.AnalysisData); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid analysis data")
		return
	}
	if len(req.VerifiedDataSources) > 0 {
		if input.VerifiedDataSources, err = marshalJSON(req.VerifiedDataSources); err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid verified data sources")
			return
		}
	}
	if len(req.VerifiedReferences) > 0 {
		if input.VerifiedReferences, err = marshalJSON(req.VerifiedReferences); err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, "Invalid verified references")
			return
		}
	}

	id, err := sh.service.Save(c.Request.Context(), studentID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	sh.log.Info("Saved analysis", "student_id", studentID, "id", id)
	RespondCreated(c, gin.H{"id": id, "message": "Analysis saved successfully"})
}

func (sh *SavedAnalysisHandler) Delete(c *gin.Context) {
	studentID, ok := sh.studentID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, apierr.CodeNotFound, "Analysis not found")
		return
	}

	if err := sh.service.Delete(c.Request.Context(), studentID, id); err != nil {
		RespondServiceError(c, err)
		return
	}

	sh.log.Info("Deleted analysis", "student_id", studentID, "id", id)
	RespondOK(c, gin.H{"message": "Analysis deleted successfully"})
}

func (sh *SavedAnalysisHandler) studentID(c *gin.Context) (string, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.StudentID == "" {
		AbortError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, "Authentication required")
		return "", false
	}
	return rd.StudentID, true
}

func marshalJSON(v any) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
