package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/capstone-backend/internal/logger"
	pkgerrors "github.com/yungbote/capstone-backend/internal/pkg/errors"
	"github.com/yungbote/capstone-backend/internal/types"
)

type StudentRepo interface {
	Create(ctx context.Context, student *types.Student) error
	GetByStudentID(ctx context.Context, studentID string) (*types.Student, error)
	TouchLastLogin(ctx context.Context, studentID string, at time.Time) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	repoLog := baseLog.With("repo", "StudentRepo")
	return &studentRepo{db: db, log: repoLog}
}

func (sr *studentRepo) Create(ctx context.Context, student *types.Student) error {
	return sr.db.WithContext(ctx).Create(student).Error
}

func (sr *studentRepo) GetByStudentID(ctx context.Context, studentID string) (*types.Student, error) {
	var result types.Student
	if err := sr.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (sr *studentRepo) TouchLastLogin(ctx context.Context, studentID string, at time.Time) error {
	return sr.db.WithContext(ctx).
		Model(&types.Student{}).
		Where("student_id = ?", studentID).
		Update("last_login_at", at).Error
}
