package catalog

import (
	"testing"
)

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return c
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	c := mustLoad(t)

	upper := c.Lookup("South Korea", "Health")
	lower := c.Lookup("south korea", "health")

	if len(upper) == 0 {
		t.Fatal("expected matches for South Korea / Health")
	}
	if len(upper) != len(lower) {
		t.Fatalf("case variants returned different counts: %d vs %d", len(upper), len(lower))
	}
	for i := range upper {
		if upper[i].Name != lower[i].Name {
			t.Fatalf("result %d differs: %q vs %q", i, upper[i].Name, lower[i].Name)
		}
	}
}

func TestLookupCountryWildcard(t *testing.T) {
	c := mustLoad(t)

	results := c.Lookup("Nowhereland", "health policy")
	if len(results) == 0 {
		t.Fatal("expected global sources to match any country")
	}
	for _, r := range results {
		global := false
		for _, country := range r.Countries {
			if country == "global" {
				global = true
			}
		}
		if !global {
			t.Fatalf("non-global source %q matched unknown country", r.Name)
		}
	}
}

func TestLookupTopicWildcardAndSubstring(t *testing.T) {
	c := mustLoad(t)

	// "all"-topic academic sources match even a nonsense topic.
	results := c.Lookup("South Korea", "xyzzy")
	names := map[string]bool{}
	for _, r := range results {
		names[r.Name] = true
	}
	if !names["Google Scholar"] {
		t.Fatal("expected wildcard-topic source Google Scholar to match")
	}

	// Topic keyword matching is substring-based on the query topic.
	results = c.Lookup("South Korea", "digital healthcare access")
	found := false
	for _, r := range results {
		if r.Name == "Korea Health Industry Development Institute" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected healthcare keyword to match Korea Health Industry Development Institute")
	}
}

func TestLookupPreservesDeclarationOrder(t *testing.T) {
	c := mustLoad(t)

	results := c.Lookup("South Korea", "economy")
	if len(results) < 2 {
		t.Fatalf("expected multiple economy matches, got %d", len(results))
	}
	// World Bank is declared before KOSIS; order must hold.
	worldBank, kosis := -1, -1
	for i, r := range results {
		switch r.Name {
		case "World Bank Open Data":
			worldBank = i
		case "Korean Statistical Information Service (KOSIS)":
			kosis = i
		}
	}
	if worldBank == -1 || kosis == -1 {
		t.Fatalf("expected both World Bank and KOSIS in results, got %v", results)
	}
	if worldBank > kosis {
		t.Fatal("results not in catalog declaration order")
	}
}
