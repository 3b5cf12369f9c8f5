package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/capstone-backend/internal/logger"
	pkgerrors "github.com/yungbote/capstone-backend/internal/pkg/errors"
	"github.com/yungbote/capstone-backend/internal/platform/apierr"
	"github.com/yungbote/capstone-backend/internal/repos"
	"github.com/yungbote/capstone-backend/internal/types"
)

var studentIDPattern = regexp.MustCompile(`^[0-9]{9}$`)

type LoginResult struct {
	StudentID   string    `json:"studentId"`
	IsNewUser   bool      `json:"isNewUser"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// AuthService validates the 9-digit student identifier, upserts the student
// record, and mints/parses the signed session token carried in the cookie.
type AuthService interface {
	Login(ctx context.Context, studentID string) (*LoginResult, error)
	MintSessionToken(studentID string) (string, error)
	ParseSessionToken(tokenString string) (string, error)
	SessionTTL() time.Duration
}

type authService struct {
	log         *logger.Logger
	studentRepo repos.StudentRepo
	secretKey   []byte
	sessionTTL  time.Duration
}

func NewAuthService(log *logger.Logger, studentRepo repos.StudentRepo, secretKey string, sessionTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:         serviceLog,
		studentRepo: studentRepo,
		secretKey:   []byte(secretKey),
		sessionTTL:  sessionTTL,
	}
}

// ValidateStudentID reports whether id is exactly nine digits.
func ValidateStudentID(id string) bool {
	return studentIDPattern.MatchString(id)
}

func (as *authService) Login(ctx context.Context, studentID string) (*LoginResult, error) {
	// Reject malformed ids before touching storage.
	if !ValidateStudentID(studentID) {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidStudentID,
			fmt.Errorf("student ID must be exactly 9 digits"))
	}

	now := time.Now().UTC()

	existing, err := as.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil && !errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeDatabaseError,
			fmt.Errorf("failed to check student record: %w", err))
	}

	isNewUser := existing == nil
	if isNewUser {
		student := &types.Student{StudentID: studentID, CreatedAt: now, LastLoginAt: now}
		if err := as.studentRepo.Create(ctx, student); err != nil {
			return nil, apierr.New(http.StatusInternalServerError, apierr.CodeDatabaseError,
				fmt.Errorf("failed to create student record: %w", err))
		}
		as.log.Info("Created student record", "student_id", studentID)
	} else {
		if err := as.studentRepo.TouchLastLogin(ctx, studentID, now); err != nil {
			return nil, apierr.New(http.StatusInternalServerError, apierr.CodeDatabaseError,
				fmt.Errorf("failed to update login time: %w", err))
		}
	}

	return &LoginResult{StudentID: studentID, IsNewUser: isNewUser, LastLoginAt: now}, nil
}

type sessionClaims struct {
	StudentID string `json:"student_id"`
	jwt.RegisteredClaims
}

func (as *authService) MintSessionToken(studentID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		StudentID: studentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   studentID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.secretKey)
}

func (as *authService) ParseSessionToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return as.secretKey, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.StudentID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.StudentID, nil
}

func (as *authService) SessionTTL() time.Duration {
	return as.sessionTTL
}
