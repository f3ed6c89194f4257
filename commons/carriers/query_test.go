package carriers

import (
	"os"
	"path/filepath"
	"testing"
)

func mustDefaultIndex(t *testing.T) *LookupIndex {
	t.Helper()
	idx, err := BuildIndex(DefaultTable())
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	return idx
}

func TestDefaultTableShape(t *testing.T) {
	idx := mustDefaultIndex(t)

	if got := len(idx.Countries()); got != 7 {
		t.Errorf("Expected 7 countries, got %d", got)
	}
	if got := len(idx.Providers()); got != 23 {
		t.Errorf("Expected 23 providers, got %d", got)
	}

	expected := map[string]int{"NG": 4, "KE": 3, "UG": 4, "TZ": 4, "SD": 3, "MA": 3, "ET": 2}
	for code, n := range expected {
		if got := len(idx.ProvidersByCountry(code)); got != n {
			t.Errorf("Expected %d providers for %s, got %d", n, code, got)
		}
	}

	if got := len(idx.ProvidersByCountry("ng")); got != 4 {
		t.Errorf("Country lookup should be case-insensitive, got %d providers", got)
	}
	if got := idx.ProvidersByCountry("ZZ"); len(got) != 0 {
		t.Errorf("Expected no providers for unknown country, got %v", got)
	}
}

func TestDefaultTableEveryProviderHasPrefixes(t *testing.T) {
	idx := mustDefaultIndex(t)
	for _, p := range idx.Providers() {
		if len(idx.Prefixes(p.ID)) == 0 {
			t.Errorf("Provider %s has no prefixes", p.ID)
		}
	}
}

func TestProviderLookup(t *testing.T) {
	idx := mustDefaultIndex(t)

	p, ok := idx.Provider("sudani-sd")
	if !ok {
		t.Fatal("Expected sudani-sd to exist")
	}
	if p.DisplayName != "Sudani One" || p.CountryCode != "SD" || p.Color != Blue {
		t.Errorf("Unexpected provider: %+v", p)
	}

	if _, ok := idx.Provider("unknown"); ok {
		t.Error("Expected unknown provider lookup to fail")
	}
}

func TestDetectByPrefix(t *testing.T) {
	idx := mustDefaultIndex(t)

	tests := []struct {
		prefix string
		want   string
		found  bool
	}{
		{"0803", "mtn-ng", true},
		{"0805", "glo-ng", true},
		{"0809", "9mobile-ng", true},
		{"0733", "airtel-ke", true},
		{"0790", "africell-ug", true},
		{"0754", "vodacom-tz", true},
		{"0621", "halotel-tz", true},
		{"0918", "mtn-sd", true},
		{"0661", "maroc-telecom-ma", true},
		{"0960", "safaricom-et", true},
		// shared ranges resolve to the earliest rule
		{"0701", "safaricom-ke", true},
		{"0712", "safaricom-ke", true},
		{"0772", "telkom-ke", true},
		{"0912", "airtel-ng", true},
		{"0914", "zain-sd", true},
		{"0700", "airtel-ug", true},
		{"0999", "", false},
		{"080", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		p, ok := idx.DetectByPrefix(tt.prefix)
		if ok != tt.found {
			t.Errorf("DetectByPrefix(%q) found=%v, want %v", tt.prefix, ok, tt.found)
			continue
		}
		if p.ID != tt.want {
			t.Errorf("DetectByPrefix(%q) = %q, want %q", tt.prefix, p.ID, tt.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	idx := mustDefaultIndex(t)
	overlaps := idx.Overlaps()

	owners, ok := overlaps["0772"]
	if !ok {
		t.Fatal("Expected 0772 to be reported as shared")
	}
	want := []string{"telkom-ke", "mtn-ug", "tigo-tz"}
	if len(owners) != len(want) {
		t.Fatalf("Expected owners %v, got %v", want, owners)
	}
	for i := range want {
		if owners[i] != want[i] {
			t.Errorf("Expected owners %v, got %v", want, owners)
			break
		}
	}

	if _, ok := overlaps["0803"]; ok {
		t.Error("0803 belongs to a single provider and should not be reported")
	}
}

func TestBuildIndexRejectsBadTables(t *testing.T) {
	base := DefaultTable()

	dup := base
	dup.Providers = append(append([]NetworkProvider(nil), base.Providers...), base.Providers[0])
	if _, err := BuildIndex(dup); err == nil {
		t.Error("Expected duplicate provider id to be rejected")
	}

	unknownRule := base.Merge([]PrefixRule{{ProviderID: "ghost-ng", Prefixes: []string{"0999"}}})
	if _, err := BuildIndex(unknownRule); err == nil {
		t.Error("Expected rule for unknown provider to be rejected")
	}

	malformed := base.Merge([]PrefixRule{{ProviderID: "mtn-ng", Prefixes: []string{"08a3"}}})
	if _, err := BuildIndex(malformed); err == nil {
		t.Error("Expected malformed prefix to be rejected")
	}

	badCountry := base
	badCountry.Providers = append(append([]NetworkProvider(nil), base.Providers...),
		NetworkProvider{ID: "x-zz", DisplayName: "X", CountryCode: "ZZ", Color: Red})
	if _, err := BuildIndex(badCountry); err == nil {
		t.Error("Expected provider with unknown country to be rejected")
	}
}

func TestMergeKeepsOrderAndDefaults(t *testing.T) {
	base := DefaultTable()
	merged := base.Merge([]PrefixRule{
		{ProviderID: "glo-ng", Prefixes: []string{"0705", "0805"}},
	})

	idx, err := BuildIndex(merged)
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}

	// 0705 was already owned by safaricom-ke, which comes first.
	if p, _ := idx.DetectByPrefix("0705"); p.ID != "safaricom-ke" {
		t.Errorf("Expected 0705 to stay with safaricom-ke, got %s", p.ID)
	}

	glo := idx.Prefixes("glo-ng")
	count := 0
	for _, p := range glo {
		if p == "0805" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected 0805 once in glo-ng prefixes, got %d", count)
	}

	if len(base.Rules[2].Prefixes) != 6 {
		t.Errorf("Merge must not modify the source table, glo-ng has %d prefixes", len(base.Rules[2].Prefixes))
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overwrite.json")
	payload := `{"rules":[{"provider_id":"mtn-ng","prefixes":["0703","0704"]}]}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	rules, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if len(rules) != 1 || rules[0].ProviderID != "mtn-ng" || len(rules[0].Prefixes) != 2 {
		t.Errorf("Unexpected rules: %+v", rules)
	}

	if _, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
