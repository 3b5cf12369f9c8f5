package types

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID   string    `gorm:"uniqueIndex;not null;column:student_id" json:"student_id"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	LastLoginAt time.Time `gorm:"not null;default:now()" json:"last_login_at"`
}

func (Student) TableName() string {
	return "student"
}
