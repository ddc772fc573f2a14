package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"Red Bicycle", []string{"red", "bicycle"}},
		{"  spaced   out\tquery  ", []string{"spaced", "out", "query"}},
		{"", []string{}},
		{"   ", []string{}},
	}
	for _, tc := range tests {
		got := Tokenize(tc.query)
		if len(tc.want) == 0 {
			assert.Empty(t, got, "query %q", tc.query)
			continue
		}
		assert.Equal(t, tc.want, got, "query %q", tc.query)
	}
}

func TestScore_TitleHitOnlyForMatchingItem(t *testing.T) {
	terms := Tokenize("bicycle")

	bike := Score(terms, Fields{Title: "Red Bicycle", Category: "Vehicles"})
	car := Score(terms, Fields{Title: "Blue Car", Category: "Vehicles"})

	assert.InDelta(t, 1.0, bike, 1e-9)
	assert.True(t, IsCandidate(bike))
	assert.Zero(t, car)
	assert.False(t, IsCandidate(car))
}

func TestScore_WeightsAreAdditive(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   float64
	}{
		{"description only", Fields{Title: "x", Description: "a lamp here"}, 0.5},
		{"category only", Fields{Title: "x", Category: "Lamps"}, 0.7},
		{"tag only", Fields{Title: "x", Tags: []string{"Desk", "LAMP"}}, 0.6},
		{"description and tag capped", Fields{Title: "x", Description: "lamp", Tags: []string{"lamp"}}, 1.0},
		{"fuzzy title only", Fields{Title: "lamb"}, 0.4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score([]string{"lamp"}, tc.fields)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestScore_NormalizedByTermCount(t *testing.T) {
	// "desk" hits description (0.5), "chair" hits nothing.
	got := Score([]string{"desk", "chair"}, Fields{Title: "x", Description: "oak desk"})
	assert.InDelta(t, 0.25, got, 1e-9)
	assert.False(t, IsCandidate(got))
}

func TestScore_ClampedToOne(t *testing.T) {
	f := Fields{
		Title:       "lamp",
		Description: "lamp",
		Category:    "lamp",
		Tags:        []string{"lamp"},
	}
	assert.Equal(t, 1.0, Score([]string{"lamp"}, f))
}

func TestScore_NoTerms(t *testing.T) {
	assert.Zero(t, Score(nil, Fields{Title: "anything"}))
}

func TestScore_EmptyTitleSkipsFuzzy(t *testing.T) {
	assert.Zero(t, Score([]string{"a"}, Fields{}))
}

func TestIsCandidate_BoundaryExclusive(t *testing.T) {
	assert.False(t, IsCandidate(0.3))
	assert.True(t, IsCandidate(0.3000001))
}

func TestScore_NonLatinText(t *testing.T) {
	got := Score(Tokenize("دوچرخه"), Fields{Title: "دوچرخه کوهستان"})
	require.True(t, IsCandidate(got))
}
