package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	pkgerrors "github.com/yungbote/capstone-backend/internal/pkg/errors"
	"github.com/yungbote/capstone-backend/internal/platform/apierr"
	"github.com/yungbote/capstone-backend/internal/types"
)

type stubStudentRepo struct {
	students map[string]*types.Student

	createCalls int
	touchCalls  int
	getCalls    int
}

func newStubStudentRepo() *stubStudentRepo {
	return &stubStudentRepo{students: map[string]*types.Student{}}
}

func (s *stubStudentRepo) Create(ctx context.Context, student *types.Student) error {
	s.createCalls++
	s.students[student.StudentID] = student
	return nil
}

func (s *stubStudentRepo) GetByStudentID(ctx context.Context, studentID string) (*types.Student, error) {
	s.getCalls++
	student, ok := s.students[studentID]
	if !ok {
		return nil, pkgerrors.ErrNotFound
	}
	return student, nil
}

func (s *stubStudentRepo) TouchLastLogin(ctx context.Context, studentID string, at time.Time) error {
	s.touchCalls++
	if student, ok := s.students[studentID]; ok {
		student.LastLoginAt = at
	}
	return nil
}

func newTestAuth(t *testing.T, repo *stubStudentRepo) AuthService {
	t.Helper()
	return NewAuthService(testLogger(t), repo, "test-secret", 7*24*time.Hour)
}

func TestValidateStudentID(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"123456789", true},
		{"000000000", true},
		{"12345678", false},
		{"1234567890", false},
		{"12345678a", false},
		{"abcdefghi", false},
		{"", false},
		{" 123456789", false},
	}

	for _, tc := range cases {
		if got := ValidateStudentID(tc.id); got != tc.valid {
			t.Fatalf("ValidateStudentID(%q)=%v, want %v", tc.id, got, tc.valid)
		}
	}
}

func TestLoginRejectsMalformedIDBeforeStorage(t *testing.T) {
	repo := newStubStudentRepo()
	as := newTestAuth(t, repo)

	_, err := as.Login(context.Background(), "12345")
	assertAPIErr(t, err, http.StatusBadRequest, apierr.CodeInvalidStudentID)

	if repo.getCalls+repo.createCalls+repo.touchCalls != 0 {
		t.Fatal("storage touched for an invalid student ID")
	}
}

func TestLoginNewStudent(t *testing.T) {
	repo := newStubStudentRepo()
	as := newTestAuth(t, repo)

	out, err := as.Login(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !out.IsNewUser {
		t.Fatal("expected IsNewUser for a first login")
	}
	if out.StudentID != "123456789" {
		t.Fatalf("unexpected student id %q", out.StudentID)
	}
	if repo.createCalls != 1 || repo.touchCalls != 0 {
		t.Fatalf("expected create only, got create=%d touch=%d", repo.createCalls, repo.touchCalls)
	}
}

func TestLoginExistingStudent(t *testing.T) {
	repo := newStubStudentRepo()
	repo.students["123456789"] = &types.Student{StudentID: "123456789"}
	as := newTestAuth(t, repo)

	out, err := as.Login(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if out.IsNewUser {
		t.Fatal("expected returning user")
	}
	if repo.createCalls != 0 || repo.touchCalls != 1 {
		t.Fatalf("expected touch only, got create=%d touch=%d", repo.createCalls, repo.touchCalls)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	as := newTestAuth(t, newStubStudentRepo())

	token, err := as.MintSessionToken("123456789")
	if err != nil {
		t.Fatalf("MintSessionToken failed: %v", err)
	}
	studentID, err := as.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken failed: %v", err)
	}
	if studentID != "123456789" {
		t.Fatalf("expected student id back, got %q", studentID)
	}
}

func TestParseSessionTokenRejectsWrongKey(t *testing.T) {
	minter := NewAuthService(testLogger(t), newStubStudentRepo(), "key-one", time.Hour)
	parser := NewAuthService(testLogger(t), newStubStudentRepo(), "key-two", time.Hour)

	token, err := minter.MintSessionToken("123456789")
	if err != nil {
		t.Fatalf("MintSessionToken failed: %v", err)
	}
	if _, err := parser.ParseSessionToken(token); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	as := NewAuthService(testLogger(t), newStubStudentRepo(), "test-secret", -time.Minute)

	token, err := as.MintSessionToken("123456789")
	if err != nil {
		t.Fatalf("MintSessionToken failed: %v", err)
	}
	if _, err := as.ParseSessionToken(token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	as := newTestAuth(t, newStubStudentRepo())
	if _, err := as.ParseSessionToken("not.a.token"); err == nil {
		t.Fatal("expected garbage token to fail")
	}
}
