package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/capstone-backend/internal/logger"
	pkgerrors "github.com/yungbote/capstone-backend/internal/pkg/errors"
	"github.com/yungbote/capstone-backend/internal/platform/apierr"
	"github.com/yungbote/capstone-backend/internal/repos"
	"github.com/yungbote/capstone-backend/internal/types"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// SaveAnalysisInput is the validated payload for a save request. Nested JSON
// payloads arrive pre-marshaled from the handler layer.
type SaveAnalysisInput struct {
	Country              string
	Interest             string
	SelectedIssue        string
	IssueImportanceScore *float64
	IssueFrequencyScore  *float64
	TopicTitle           string
	AnalysisData         datatypes.JSON
	VerifiedDataSources  datatypes.JSON
	VerifiedReferences   datatypes.JSON
}

// SavedAnalysisService owns the per-student saved-analysis records: create on
// explicit save, paginated list, ownership-checked get and delete. Records
// are never updated after creation.
type SavedAnalysisService interface {
	Save(ctx context.Context, studentID string, input *SaveAnalysisInput) (uuid.UUID, error)
	List(ctx context.Context, studentID string, page, limit int, country string) (*types.SavedAnalysisPage, error)
	Get(ctx context.Context, studentID string, id uuid.UUID) (*types.SavedAnalysis, error)
	Delete(ctx context.Context, studentID string, id uuid.UUID) error
}

type savedAnalysisService struct {
	log  *logger.Logger
	repo repos.SavedAnalysisRepo
}

func NewSavedAnalysisService(log *logger.Logger, repo repos.SavedAnalysisRepo) SavedAnalysisService {
	serviceLog := log.With("service", "SavedAnalysisService")
	return &savedAnalysisService{log: serviceLog, repo: repo}
}

func (ss *savedAnalysisService) Save(ctx context.Context, studentID string, input *SaveAnalysisInput) (uuid.UUID, error) {
	record := &types.SavedAnalysis{
		StudentID:            studentID,
		Country:              input.Country,
		Interest:             input.Interest,
		SelectedIssue:        input.SelectedIssue,
		IssueImportanceScore: input.IssueImportanceScore,
		IssueFrequencyScore:  input.IssueFrequencyScore,
		TopicTitle:           input.TopicTitle,
		AnalysisData:         input.AnalysisData,
		VerifiedDataSources:  input.VerifiedDataSources,
		VerifiedReferences:   input.VerifiedReferences,
	}
	if err := ss.repo.Create(ctx, record); err != nil {
		return uuid.Nil, apierr.New(http.StatusInternalServerError, apierr.CodeDatabaseError,
			fmt.Errorf("failed to save analysis: %w", err))
	}
	return record.ID, nil
}

func (ss *savedAnalysisService) List(ctx context.Context, studentID string, page, limit int, country string) (*types.SavedAnalysisPage, error) {
	page, limit = NormalizePagination(page, limit)

	records, total, err := ss.repo.ListByStudent(ctx, studentID, country, (page-1)*limit, limit)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeDatabaseError,
			fmt.Errorf("failed to fetch saved analyses: %w", err))
	}

	items := make([]types.SavedAnalysisSummary, 0, len(records))
	for _, r := range records {
		items = append(items, types.SavedAnalysisSummary{
			ID:            r.ID,
			Country:       r.Country,
			Interest:      r.Interest,
			SelectedIssue: r.SelectedIssue,
			TopicTitle:    r.TopicTitle,
			CreatedAt:     r.CreatedAt,
		})
	}

	return &types.SavedAnalysisPage{
		Items: items,
		Pagination: types.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: TotalPages(total, limit),
		},
	}, nil
}

func (ss *savedAnalysisService) Get(ctx context.Context, studentID string, id uuid.UUID) (*types.SavedAnalysis, error) {
	record, err := ss.getOwned(ctx, studentID, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (ss *savedAnalysisService) Delete(ctx context.Context, studentID string, id uuid.UUID) error {
	if _, err := ss.getOwned(ctx, studentID, id); err != nil {
		return err
	}
	if err := ss.repo.DeleteByID(ctx, id); err != nil {
		return apierr.New(http.StatusInternalServerError, apierr.CodeDatabaseError,
			fmt.Errorf("failed to delete analysis: %w", err))
	}
	return nil
}

// getOwned fetches a record and enforces that it belongs to the caller:
// missing is 404, someone else's record is 403.
func (ss *savedAnalysisService) getOwned(ctx context.Context, studentID string, id uuid.UUID) (*types.SavedAnalysis, error) {
	record, err := ss.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, apierr.CodeNotFound,
				fmt.Errorf("analysis not found"))
		}
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeDatabaseError,
			fmt.Errorf("failed to fetch analysis: %w", err))
	}
	if record.StudentID != studentID {
		return nil, apierr.New(http.StatusForbidden, apierr.CodeForbidden,
			fmt.Errorf("you do not have access to this analysis"))
	}
	return record, nil
}

// NormalizePagination clamps page/limit to sane bounds (1-based page, limit
// defaulting to 10 and capped at 100).
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// TotalPages computes the page count for a total row count at a given limit.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
