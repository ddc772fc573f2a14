// Package draft holds the listing proposal generated from a product photo.
package draft

import "strings"

// Categories the oracle may assign to a drafted listing.
var Categories = []string{
	"Vehicles", "Electronics", "Home", "Furniture", "Tools", "Fashion", "Services", "Other",
}

// OtherCategory is used when the oracle proposes an unknown category.
const OtherCategory = "Other"

// Draft is a pre-filled listing the seller reviews before publishing.
type Draft struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Tags              []string `json:"tags"`
	PriceMin          *float64 `json:"priceMin"`
	PriceMax          *float64 `json:"priceMax"`
	ConfidenceScore   float64  `json:"confidenceScore"`
	InterpretedIntent string   `json:"interpretedIntent"`
}

// NormalizeCategory maps c onto a known category, case-insensitively; unknown values become Other.
func NormalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	for _, known := range Categories {
		if strings.EqualFold(known, c) {
			return known
		}
	}
	return OtherCategory
}

// Normalize fixes the category, drops blank tags and clamps confidence to [0,1].
// Zero prices mean "unknown" and are cleared.
func (d Draft) Normalize() Draft {
	d.Category = NormalizeCategory(d.Category)

	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		if s := strings.TrimSpace(t); s != "" {
			tags = append(tags, s)
		}
	}
	d.Tags = tags

	if d.PriceMin != nil && *d.PriceMin <= 0 {
		d.PriceMin = nil
	}
	if d.PriceMax != nil && *d.PriceMax <= 0 {
		d.PriceMax = nil
	}

	switch {
	case d.ConfidenceScore < 0:
		d.ConfidenceScore = 0
	case d.ConfidenceScore > 1:
		d.ConfidenceScore = 1
	}
	return d
}
