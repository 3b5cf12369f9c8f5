package types

import "time"

type SourceType string

const (
	SourceTypeGovernment       SourceType = "government"
	SourceTypeInternationalOrg SourceType = "international_org"
	SourceTypeAcademic         SourceType = "academic"
	SourceTypeNGO              SourceType = "ngo"
	SourceTypeOther            SourceType = "other"
)

// TrustedSource is a static catalog entry. A countries entry of "global" and a
// topics entry of "all" act as wildcards.
type TrustedSource struct {
	Name        string     `json:"name" yaml:"name"`
	URL         string     `json:"url" yaml:"url"`
	Description string     `json:"description" yaml:"description"`
	Type        SourceType `json:"type" yaml:"type"`
	Countries   []string   `json:"countries" yaml:"countries"`
	Topics      []string   `json:"topics" yaml:"topics"`
}

type VerifiedDataSource struct {
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	SourceType  SourceType `json:"source_type"`
	VerifiedAt  time.Time  `json:"verified_at"`
}

type VerifiedReference struct {
	Title      string    `json:"title"`
	Authors    []string  `json:"authors"`
	Year       int       `json:"year"`
	Source     string    `json:"source"`
	URL        string    `json:"url,omitempty"`
	DOI        string    `json:"doi,omitempty"`
	VerifiedAt time.Time `json:"verified_at"`
}

type DataSourceVerification struct {
	VerifiedSources       []VerifiedDataSource `json:"verified_sources"`
	UnverifiedSuggestions []string             `json:"unverified_suggestions"`
}

type ReferenceVerification struct {
	VerifiedReferences    []VerifiedReference `json:"verified_references"`
	UnverifiedSuggestions []string            `json:"unverified_suggestions"`
}

// CombinedVerification joins the two independent verification passes run by the
// combined endpoint.
type CombinedVerification struct {
	DataSources *DataSourceVerification `json:"data_sources"`
	References  *ReferenceVerification  `json:"references"`
}
