package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/yungbote/capstone-backend/internal/platform/apierr"
)

type stubCompletion struct {
	raw        json.RawMessage
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubCompletion) GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	s.lastSystem = system
	s.lastUser = user
	return s.raw, s.err
}

func assertAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	if apiErr.Status != status || apiErr.Code != code {
		t.Fatalf("expected %d/%s, got %d/%s", status, code, apiErr.Status, apiErr.Code)
	}
}

func TestGenerateIssues(t *testing.T) {
	stub := &stubCompletion{raw: json.RawMessage(`{
		"policy_issues": [
			{"issue": "Aging population pressure on pensions", "importance_score": 9, "frequency_score": 8, "total_score": 17},
			{"issue": "Youth unemployment", "importance_score": 8, "frequency_score": 7.5, "total_score": 15.5}
		]
	}`)}
	gs := NewGenerationService(testLogger(t), stub)

	out, err := gs.GenerateIssues(context.Background(), "South Korea", "social welfare")
	if err != nil {
		t.Fatalf("GenerateIssues failed: %v", err)
	}
	if len(out.PolicyIssues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(out.PolicyIssues))
	}
	if out.PolicyIssues[0].TotalScore != 17 {
		t.Fatalf("unexpected first issue: %+v", out.PolicyIssues[0])
	}
	if !strings.Contains(stub.lastUser, "Country: South Korea") || !strings.Contains(stub.lastUser, "Area of Interest: social welfare") {
		t.Fatalf("user prompt missing inputs: %q", stub.lastUser)
	}
}

func TestGenerateIssuesUpstreamError(t *testing.T) {
	stub := &stubCompletion{err: errors.New("rate limited")}
	gs := NewGenerationService(testLogger(t), stub)

	_, err := gs.GenerateIssues(context.Background(), "South Korea", "health")
	assertAPIErr(t, err, http.StatusBadGateway, apierr.CodeAPIError)
}

func TestGenerateIssuesMissingKey(t *testing.T) {
	stub := &stubCompletion{raw: json.RawMessage(`{"something_else": []}`)}
	gs := NewGenerationService(testLogger(t), stub)

	_, err := gs.GenerateIssues(context.Background(), "South Korea", "health")
	assertAPIErr(t, err, http.StatusBadGateway, apierr.CodeParseError)
}

func TestGenerateTopicsExcludesExisting(t *testing.T) {
	stub := &stubCompletion{raw: json.RawMessage(`{"topics": [{"title": "A fresh topic"}]}`)}
	gs := NewGenerationService(testLogger(t), stub)

	existing := []string{"Old Topic One", "Old Topic Two"}
	out, err := gs.GenerateTopics(context.Background(), "South Korea", "youth unemployment", existing)
	if err != nil {
		t.Fatalf("GenerateTopics failed: %v", err)
	}
	if len(out.Topics) != 1 || out.Topics[0].Title != "A fresh topic" {
		t.Fatalf("unexpected topics: %+v", out.Topics)
	}
	for _, want := range []string{"- Old Topic One", "- Old Topic Two", "avoid the following topics"} {
		if !strings.Contains(stub.lastUser, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, stub.lastUser)
		}
	}
}

func TestGenerateTopicsNoExclusionBlockWhenEmpty(t *testing.T) {
	stub := &stubCompletion{raw: json.RawMessage(`{"topics": []}`)}
	gs := NewGenerationService(testLogger(t), stub)

	if _, err := gs.GenerateTopics(context.Background(), "South Korea", "youth unemployment", nil); err != nil {
		t.Fatalf("GenerateTopics failed: %v", err)
	}
	if strings.Contains(stub.lastUser, "avoid the following") {
		t.Fatalf("exclusion block present without existing topics:\n%s", stub.lastUser)
	}
}

func TestGenerateTopicsMalformedJSON(t *testing.T) {
	stub := &stubCompletion{raw: json.RawMessage(`not json`)}
	gs := NewGenerationService(testLogger(t), stub)

	_, err := gs.GenerateTopics(context.Background(), "South Korea", "health", nil)
	assertAPIErr(t, err, http.StatusBadGateway, apierr.CodeParseError)
}

func TestGenerateAnalysis(t *testing.T) {
	stub := &stubCompletion{raw: json.RawMessage(`{
		"rationale": {"relevance": "r", "feasibility": "f", "impact": "i"},
		"data_sources": ["KOSIS national statistics"],
		"key_references": ["Smith, Jones (2020). Title X."],
		"methodologies": [{"methodology": "Difference-in-differences", "explanation": "e"}],
		"policy_questions": ["What drives adoption?"]
	}`)}
	gs := NewGenerationService(testLogger(t), stub)

	out, err := gs.GenerateAnalysis(context.Background(), "South Korea", "digital health", "Telemedicine adoption in rural areas")
	if err != nil {
		t.Fatalf("GenerateAnalysis failed: %v", err)
	}
	if out.Rationale.Relevance != "r" {
		t.Fatalf("unexpected rationale: %+v", out.Rationale)
	}
	if len(out.Methodologies) != 1 || out.Methodologies[0].Methodology != "Difference-in-differences" {
		t.Fatalf("unexpected methodologies: %+v", out.Methodologies)
	}
	if !strings.Contains(stub.lastUser, "Capstone Topic: Telemedicine adoption in rural areas") {
		t.Fatalf("user prompt missing topic: %q", stub.lastUser)
	}
}

func TestGenerateAnalysisMissingRequiredKey(t *testing.T) {
	// methodologies absent
	stub := &stubCompletion{raw: json.RawMessage(`{
		"rationale": {"relevance": "r", "feasibility": "f", "impact": "i"},
		"data_sources": ["a"]
	}`)}
	gs := NewGenerationService(testLogger(t), stub)

	_, err := gs.GenerateAnalysis(context.Background(), "South Korea", "health", "topic")
	assertAPIErr(t, err, http.StatusBadGateway, apierr.CodeParseError)
}
