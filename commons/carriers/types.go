// SPDX-License-Identifier: GPL-3.0-only

package carriers

type Color string

const (
	Yellow  Color = "yellow"
	Red     Color = "red"
	Green   Color = "green"
	Emerald Color = "emerald"
	Blue    Color = "blue"
	Purple  Color = "purple"
	Orange  Color = "orange"
)

// NetworkProvider is one carrier in one country.
type NetworkProvider struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	CountryCode string `json:"country_code"`
	Color       Color  `json:"color"`
}

type Country struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Flag     string `json:"flag"`
	Currency string `json:"currency"`
}

// PrefixRule lists the 4-digit leading groups issued to a provider.
type PrefixRule struct {
	ProviderID string   `json:"provider_id"`
	Prefixes   []string `json:"prefixes"`
}

// Table is the raw static data. Rules order decides which provider wins
// when a prefix appears under more than one of them.
type Table struct {
	Countries []Country
	Providers []NetworkProvider
	Rules     []PrefixRule
}

type RawOverwrite struct {
	Rules []PrefixRule `json:"rules"`
}

type LookupIndex struct {
	countries []Country
	providers []NetworkProvider
	rules     []PrefixRule
	sets      []map[string]struct{}
	byID      map[string]NetworkProvider
	byCountry map[string][]NetworkProvider
	country   map[string]Country
}
