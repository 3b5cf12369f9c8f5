package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/capstone-backend/internal/types"
)

//go:embed sources.yaml
var sourcesYAML []byte

// Catalog is the static, process-lifetime list of known-good data sources.
// There is no mutation API; lookups return entries in declaration order.
type Catalog struct {
	sources []types.TrustedSource
}

func Load() (*Catalog, error) {
	var sources []types.TrustedSource
	if err := yaml.Unmarshal(sourcesYAML, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse trusted source catalog: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("trusted source catalog is empty")
	}
	return &Catalog{sources: sources}, nil
}

// Lookup returns every source matching the country (exact, case-insensitive,
// with "global" as wildcard) whose topic keywords appear case-insensitively as
// substrings of topic ("all" is a wildcard).
func (c *Catalog) Lookup(country, topic string) []types.TrustedSource {
	lowerTopic := strings.ToLower(topic)

	var matches []types.TrustedSource
	for _, source := range c.sources {
		if matchesCountry(source.Countries, country) && matchesTopic(source.Topics, lowerTopic) {
			matches = append(matches, source)
		}
	}
	return matches
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.sources)
}

func matchesCountry(countries []string, country string) bool {
	for _, c := range countries {
		if c == "global" || strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}

func matchesTopic(topics []string, lowerTopic string) bool {
	for _, t := range topics {
		if t == "all" || strings.Contains(lowerTopic, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
