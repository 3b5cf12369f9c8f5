package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	openaiclient "github.com/yungbote/capstone-backend/internal/clients/openai"
	"github.com/yungbote/capstone-backend/internal/logger"
	"github.com/yungbote/capstone-backend/internal/platform/apierr"
	"github.com/yungbote/capstone-backend/internal/types"
)

// GenerationService drives the three wizard completion calls. Each call is a
// prompt-construction + shape-check pair over the completion client; a failed
// provider call and a malformed payload are distinct error codes.
type GenerationService interface {
	GenerateIssues(ctx context.Context, country, interest string) (*types.IssuesResponse, error)
	GenerateTopics(ctx context.Context, country, issue string, existingTopics []string) (*types.TopicsResponse, error)
	GenerateAnalysis(ctx context.Context, country, issue, topicTitle string) (*types.AnalysisData, error)
}

type generationService struct {
	log    *logger.Logger
	openai openaiclient.Client
}

func NewGenerationService(log *logger.Logger, openaiClient openaiclient.Client) GenerationService {
	serviceLog := log.With("service", "GenerationService")
	return &generationService{log: serviceLog, openai: openaiClient}
}

const issuesSystemPrompt = `You are an expert policy analyst specializing in capstone project topic generation for graduate students. Your task is to identify key policy issues based on the user's country of interest and their area of interest.

For each policy issue, provide:
1. A clear, concise issue title
2. An importance score (1-10) based on policy relevance and urgency
3. A frequency score (1-10) based on how often this topic appears in academic and policy discussions
4. A total score (sum of importance and frequency)

Return your response as a JSON object with the following structure:
{
  "policy_issues": [
    {
      "issue": "Issue title here",
      "importance_score": 8.5,
      "frequency_score": 7.0,
      "total_score": 15.5
    }
  ]
}

Generate exactly 10 policy issues, sorted by total_score in descending order.`

func (gs *generationService) GenerateIssues(ctx context.Context, country, interest string) (*types.IssuesResponse, error) {
	userPrompt := fmt.Sprintf(`Country: %s
Area of Interest: %s

Please generate 10 relevant policy issues for a capstone project that a graduate student could research. The issues should be:
1. Specific to the country mentioned
2. Related to the area of interest
3. Feasible for academic research
4. Relevant to current policy discussions`, country, interest)

	raw, err := gs.openai.GenerateJSON(ctx, issuesSystemPrompt, userPrompt)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeAPIError, err)
	}

	var out types.IssuesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeParseError, fmt.Errorf("failed to parse issues response: %w", err))
	}
	if out.PolicyIssues == nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeParseError, fmt.Errorf("issues response missing policy_issues array"))
	}
	return &out, nil
}

const topicsSystemPrompt = `You are an expert academic advisor specializing in capstone project topic generation for graduate students. Your task is to generate specific, researchable capstone project topics based on a policy issue.

Return your response as a JSON object with the following structure:
{
  "topics": [
    { "title": "Specific research topic title here" }
  ]
}

Generate exactly 5 unique topics. Each topic should be:
1. Specific and focused enough for a capstone project
2. Researchable with available data and methods
3. Relevant to policy discussions in the specified country
4. Original and not a duplicate of existing topics`

func (gs *generationService) GenerateTopics(ctx context.Context, country, issue string, existingTopics []string) (*types.TopicsResponse, error) {
	userPrompt := buildTopicsUserPrompt(country, issue, existingTopics)

	raw, err := gs.openai.GenerateJSON(ctx, topicsSystemPrompt, userPrompt)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeAPIError, err)
	}

	var out types.TopicsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeParseError, fmt.Errorf("failed to parse topics response: %w", err))
	}
	if out.Topics == nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeParseError, fmt.Errorf("topics response missing topics array"))
	}
	return &out, nil
}

func buildTopicsUserPrompt(country, issue string, existingTopics []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Country: %s
Policy Issue: %s

Please generate 5 specific capstone project topics that a graduate student could research.`, country, issue)

	if len(existingTopics) > 0 {
		sb.WriteString("\n\nPlease avoid the following topics that have already been suggested:")
		for _, t := range existingTopics {
			sb.WriteString("\n- ")
			sb.WriteString(t)
		}
	}
	return sb.String()
}

const analysisSystemPrompt = `You are an expert academic advisor providing detailed analysis for a capstone project topic. Provide comprehensive guidance including rationale, methodology, data sources, and key references.

Return your response as a JSON object with the following structure:
{
  "rationale": {
    "relevance": "Explanation of topic relevance to current policy discussions...",
    "feasibility": "Assessment of research feasibility including data availability and methodology...",
    "impact": "Potential impact of the research on policy and practice..."
  },
  "data_sources": [
    "Data source 1 with description",
    "Data source 2 with description"
  ],
  "key_references": [
    "Author (Year). Title. Journal/Publisher.",
    "Author (Year). Title. Journal/Publisher."
  ],
  "methodologies": [
    {
      "methodology": "Methodology name",
      "explanation": "How this methodology applies to the research..."
    }
  ],
  "policy_questions": [
    "Research question 1?",
    "Research question 2?"
  ]
}

Provide:
- 5-8 potential data sources (real, verifiable sources preferred)
- 5-8 key references (real academic papers and reports when possible)
- 3-5 recommended methodologies
- 5 key policy questions`

func (gs *generationService) GenerateAnalysis(ctx context.Context, country, issue, topicTitle string) (*types.AnalysisData, error) {
	userPrompt := fmt.Sprintf(`Country: %s
Policy Issue: %s
Capstone Topic: %s

Please provide a detailed analysis of this capstone project topic.`, country, issue, topicTitle)

	raw, err := gs.openai.GenerateJSON(ctx, analysisSystemPrompt, userPrompt)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeAPIError, err)
	}

	// Presence check on the top-level keys before committing to the full shape.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeParseError, fmt.Errorf("failed to parse analysis response: %w", err))
	}
	for _, required := range []string{"rationale", "data_sources", "methodologies"} {
		if _, ok := keys[required]; !ok {
			return nil, apierr.New(http.StatusBadGateway, apierr.CodeParseError, fmt.Errorf("analysis response missing %s", required))
		}
	}

	var out types.AnalysisData
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeParseError, fmt.Errorf("failed to parse analysis response: %w", err))
	}
	return &out, nil
}
