// SPDX-License-Identifier: GPL-3.0-only

package carriers

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
)

const PrefixLength = 4

func LoadJSON(filePath string) ([]PrefixRule, error) {
	var raw RawOverwrite

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return raw.Rules, nil
}

// Merge appends extra prefixes to the matching rules of t. Rules for
// providers that have no rule yet go to the end of the table, so existing
// first-match results never change.
func (t Table) Merge(extra []PrefixRule) Table {
	out := Table{
		Countries: t.Countries,
		Providers: t.Providers,
		Rules:     make([]PrefixRule, len(t.Rules)),
	}
	pos := make(map[string]int, len(t.Rules))
	for i, r := range t.Rules {
		out.Rules[i] = PrefixRule{ProviderID: r.ProviderID, Prefixes: append([]string(nil), r.Prefixes...)}
		pos[r.ProviderID] = i
	}

	for _, r := range extra {
		i, ok := pos[r.ProviderID]
		if !ok {
			out.Rules = append(out.Rules, PrefixRule{ProviderID: r.ProviderID})
			i = len(out.Rules) - 1
			pos[r.ProviderID] = i
		}
		for _, p := range r.Prefixes {
			if !slices.Contains(out.Rules[i].Prefixes, p) {
				out.Rules[i].Prefixes = append(out.Rules[i].Prefixes, p)
			}
		}
	}
	return out
}

func BuildIndex(t Table) (*LookupIndex, error) {
	idx := &LookupIndex{
		countries: t.Countries,
		providers: t.Providers,
		rules:     t.Rules,
		sets:      make([]map[string]struct{}, 0, len(t.Rules)),
		byID:      make(map[string]NetworkProvider, len(t.Providers)),
		byCountry: make(map[string][]NetworkProvider),
		country:   make(map[string]Country, len(t.Countries)),
	}

	for _, c := range t.Countries {
		idx.country[strings.ToUpper(c.Code)] = c
	}

	for _, p := range t.Providers {
		if p.ID == "" {
			return nil, fmt.Errorf("provider %q has an empty id", p.DisplayName)
		}
		if _, dup := idx.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate provider id %q", p.ID)
		}
		if _, ok := idx.country[strings.ToUpper(p.CountryCode)]; !ok {
			return nil, fmt.Errorf("provider %q references unknown country %q", p.ID, p.CountryCode)
		}
		idx.byID[p.ID] = p
		cc := strings.ToUpper(p.CountryCode)
		idx.byCountry[cc] = append(idx.byCountry[cc], p)
	}

	for _, r := range t.Rules {
		if _, ok := idx.byID[r.ProviderID]; !ok {
			return nil, fmt.Errorf("prefix rule references unknown provider %q", r.ProviderID)
		}
		set := make(map[string]struct{}, len(r.Prefixes))
		for _, p := range r.Prefixes {
			if !isPrefix(p) {
				return nil, fmt.Errorf("provider %q has malformed prefix %q", r.ProviderID, p)
			}
			set[p] = struct{}{}
		}
		idx.sets = append(idx.sets, set)
	}

	return idx, nil
}

func isPrefix(p string) bool {
	if len(p) != PrefixLength {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return false
		}
	}
	return true
}

func (idx *LookupIndex) Countries() []Country {
	return slices.Clone(idx.countries)
}

func (idx *LookupIndex) Country(code string) (Country, bool) {
	c, ok := idx.country[strings.ToUpper(code)]
	return c, ok
}

// Providers returns every provider in table order.
func (idx *LookupIndex) Providers() []NetworkProvider {
	return slices.Clone(idx.providers)
}

func (idx *LookupIndex) Provider(id string) (NetworkProvider, bool) {
	p, ok := idx.byID[id]
	return p, ok
}

func (idx *LookupIndex) ProvidersByCountry(code string) []NetworkProvider {
	return slices.Clone(idx.byCountry[strings.ToUpper(code)])
}

func (idx *LookupIndex) Prefixes(providerID string) []string {
	for _, r := range idx.rules {
		if r.ProviderID == providerID {
			return slices.Clone(r.Prefixes)
		}
	}
	return nil
}

// DetectByPrefix returns the first provider, in rule order, whose prefix set
// contains prefix.
func (idx *LookupIndex) DetectByPrefix(prefix string) (NetworkProvider, bool) {
	for i, set := range idx.sets {
		if _, ok := set[prefix]; ok {
			return idx.byID[idx.rules[i].ProviderID], true
		}
	}
	return NetworkProvider{}, false
}

// Overlaps lists prefixes claimed by more than one provider, with the
// providers in rule order. The first entry is the one DetectByPrefix returns.
func (idx *LookupIndex) Overlaps() map[string][]string {
	owners := make(map[string][]string)
	for _, r := range idx.rules {
		for _, p := range r.Prefixes {
			if !slices.Contains(owners[p], r.ProviderID) {
				owners[p] = append(owners[p], r.ProviderID)
			}
		}
	}
	for p, ids := range owners {
		if len(ids) < 2 {
			delete(owners, p)
		}
	}
	return owners
}
