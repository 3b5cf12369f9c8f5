package types

// PolicyIssue is one AI-suggested policy issue for a country/interest pair.
// TotalScore is the sum of the two component scores at generation time.
type PolicyIssue struct {
	Issue           string  `json:"issue"`
	ImportanceScore float64 `json:"importance_score"`
	FrequencyScore  float64 `json:"frequency_score"`
	TotalScore      float64 `json:"total_score"`
}

type IssuesResponse struct {
	PolicyIssues []PolicyIssue `json:"policy_issues"`
}

type Topic struct {
	Title string `json:"title"`
}

type TopicsResponse struct {
	Topics []Topic `json:"topics"`
}

type Rationale struct {
	Relevance   string `json:"relevance"`
	Feasibility string `json:"feasibility"`
	Impact      string `json:"impact"`
}

type Methodology struct {
	Methodology string `json:"methodology"`
	Explanation string `json:"explanation"`
}

// AnalysisData is the raw AI analysis output prior to verification.
type AnalysisData struct {
	Rationale       Rationale     `json:"rationale"`
	DataSources     []string      `json:"data_sources"`
	KeyReferences   []string      `json:"key_references"`
	Methodologies   []Methodology `json:"methodologies"`
	PolicyQuestions []string      `json:"policy_questions"`
}
