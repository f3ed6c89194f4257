// SPDX-License-Identifier: GPL-3.0-only

package pricing

import "slices"

// FallbackBundlePrice is charged for bundle ids missing from the catalog.
const FallbackBundlePrice = 1000

// Tier is a named discount bracket for airtime purchases.
type Tier struct {
	Name      string  `json:"name"`
	Discount  float64 `json:"discount"`
	MinAmount float64 `json:"min_amount"`
}

// Bundle is a fixed data package.
type Bundle struct {
	ID              string  `json:"id"`
	Size            string  `json:"size"`
	Validity        string  `json:"validity"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountedPrice float64 `json:"discounted_price"`
}

func (b Bundle) Savings() float64 {
	return b.OriginalPrice - b.DiscountedPrice
}

type Catalog struct {
	tiers   []Tier
	bundles []Bundle
}

func NewCatalog(tiers []Tier, bundles []Bundle) *Catalog {
	return &Catalog{tiers: slices.Clone(tiers), bundles: slices.Clone(bundles)}
}

func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]Tier{
			{Name: "basic", Discount: 2, MinAmount: 100},
			{Name: "premium", Discount: 5, MinAmount: 500},
			{Name: "vip", Discount: 8, MinAmount: 1000},
		},
		[]Bundle{
			{ID: "1gb", Size: "1GB", Validity: "30 days", OriginalPrice: 500, DiscountedPrice: 450},
			{ID: "2gb", Size: "2GB", Validity: "30 days", OriginalPrice: 1000, DiscountedPrice: 850},
			{ID: "5gb", Size: "5GB", Validity: "30 days", OriginalPrice: 2500, DiscountedPrice: 2000},
			{ID: "10gb", Size: "10GB", Validity: "30 days", OriginalPrice: 5000, DiscountedPrice: 3800},
			{ID: "20gb", Size: "20GB", Validity: "60 days", OriginalPrice: 10000, DiscountedPrice: 7500},
			{ID: "50gb", Size: "50GB", Validity: "90 days", OriginalPrice: 25000, DiscountedPrice: 18000},
		},
	)
}

func (c *Catalog) Tiers() []Tier {
	return slices.Clone(c.tiers)
}

func (c *Catalog) Bundles() []Bundle {
	return slices.Clone(c.bundles)
}

func (c *Catalog) Tier(name string) (Tier, bool) {
	for _, t := range c.tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

func (c *Catalog) Bundle(id string) (Bundle, bool) {
	for _, b := range c.bundles {
		if b.ID == id {
			return b, true
		}
	}
	return Bundle{}, false
}

// BundlePrice is the amount charged for a bundle id.
func (c *Catalog) BundlePrice(id string) float64 {
	if b, ok := c.Bundle(id); ok {
		return b.DiscountedPrice
	}
	return FallbackBundlePrice
}
