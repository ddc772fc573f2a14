package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Electronics", NormalizeCategory("electronics"))
	assert.Equal(t, "Furniture", NormalizeCategory(" Furniture "))
	assert.Equal(t, OtherCategory, NormalizeCategory("Spaceships"))
	assert.Equal(t, OtherCategory, NormalizeCategory(""))
}

func TestDraft_Normalize(t *testing.T) {
	zero := 0.0
	ceiling := 250.0
	d := Draft{
		Title:           "Road bike",
		Category:        "vehicles",
		Tags:            []string{"bike", " ", "road"},
		PriceMin:        &zero,
		PriceMax:        &ceiling,
		ConfidenceScore: 1.4,
	}.Normalize()

	assert.Equal(t, "Vehicles", d.Category)
	assert.Equal(t, []string{"bike", "road"}, d.Tags)
	assert.Nil(t, d.PriceMin)
	if assert.NotNil(t, d.PriceMax) {
		assert.Equal(t, 250.0, *d.PriceMax)
	}
	assert.Equal(t, 1.0, d.ConfidenceScore)
}
