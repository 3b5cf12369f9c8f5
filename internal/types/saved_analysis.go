package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SavedAnalysis is the single persisted wizard artifact. It is created on an
// explicit save, owned by exactly one student, and never mutated afterwards.
type SavedAnalysis struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID            string         `gorm:"index;not null;column:student_id" json:"student_id"`
	Country              string         `gorm:"not null;column:country" json:"country"`
	Interest             string         `gorm:"not null;column:interest" json:"interest"`
	SelectedIssue        string         `gorm:"not null;column:selected_issue" json:"selected_issue"`
	IssueImportanceScore *float64       `gorm:"column:issue_importance_score" json:"issue_importance_score"`
	IssueFrequencyScore  *float64       `gorm:"column:issue_frequency_score" json:"issue_frequency_score"`
	TopicTitle           string         `gorm:"not null;column:topic_title" json:"topic_title"`
	AnalysisData         datatypes.JSON `gorm:"type:jsonb;not null;column:analysis_data" json:"analysis_data"`
	VerifiedDataSources  datatypes.JSON `gorm:"type:jsonb;column:verified_data_sources" json:"verified_data_sources"`
	VerifiedReferences   datatypes.JSON `gorm:"type:jsonb;column:verified_references" json:"verified_references"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (SavedAnalysis) TableName() string {
	return "saved_analysis"
}

// SavedAnalysisSummary is the trimmed list-view shape.
type SavedAnalysisSummary struct {
	ID            uuid.UUID `json:"id"`
	Country       string    `json:"country"`
	Interest      string    `json:"interest"`
	SelectedIssue string    `json:"selected_issue"`
	TopicTitle    string    `json:"topic_title"`
	CreatedAt     time.Time `json:"created_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type SavedAnalysisPage struct {
	Items      []SavedAnalysisSummary `json:"items"`
	Pagination Pagination             `json:"pagination"`
}
