package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/capstone-backend/internal/logger"
	pkgerrors "github.com/yungbote/capstone-backend/internal/pkg/errors"
	"github.com/yungbote/capstone-backend/internal/types"
)

type SavedAnalysisRepo interface {
	Create(ctx context.Context, analysis *types.SavedAnalysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.SavedAnalysis, error)
	ListByStudent(ctx context.Context, studentID, country string, offset, limit int) ([]*types.SavedAnalysis, int64, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type savedAnalysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSavedAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) SavedAnalysisRepo {
	repoLog := baseLog.With("repo", "SavedAnalysisRepo")
	return &savedAnalysisRepo{db: db, log: repoLog}
}

func (sar *savedAnalysisRepo) Create(ctx context.Context, analysis *types.SavedAnalysis) error {
	return sar.db.WithContext(ctx).Create(analysis).Error
}

func (sar *savedAnalysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.SavedAnalysis, error) {
	var result types.SavedAnalysis
	if err := sar.db.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (sar *savedAnalysisRepo) ListByStudent(ctx context.Context, studentID, country string, offset, limit int) ([]*types.SavedAnalysis, int64, error) {
	query := sar.db.WithContext(ctx).
		Model(&types.SavedAnalysis{}).
		Where("student_id = ?", studentID)
	if country != "" {
		query = query.Where("country = ?", country)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.SavedAnalysis
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (sar *savedAnalysisRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return sar.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.SavedAnalysis{}).Error
}
