package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/geo"
)

func TestNewDiscover_Defaults(t *testing.T) {
	r, err := NewDiscover(nil, 0, "", "", 1, 20)
	require.NoError(t, err)

	assert.Nil(t, r.Position())
	assert.Equal(t, DefaultRadiusKm, r.RadiusKm())
	assert.Equal(t, SortRecent, r.SortBy())
	assert.Equal(t, 1, r.Page())
	assert.Equal(t, 20, r.PageSize())
}

func TestNewDiscover_Invalid(t *testing.T) {
	tests := []struct {
		name           string
		page, pageSize int
	}{
		{"zero page", 0, 10},
		{"negative page", -1, 10},
		{"zero page size", 1, 0},
		{"page size too large", 1, 101},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDiscover(nil, 10, "", SortRecent, tc.page, tc.pageSize)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestNewSearch(t *testing.T) {
	pos := &geo.Coordinate{Latitude: 35.7, Longitude: 51.4}
	minP, maxP := 5.0, 10.0
	r, err := NewSearch("red bicycle", pos, nil, "Vehicles", &minP, &maxP)
	require.NoError(t, err)

	assert.Equal(t, "red bicycle", r.Query())
	assert.Equal(t, pos, r.Position())
	assert.Equal(t, "Vehicles", r.Category())
	assert.Equal(t, &minP, r.MinPrice())
	assert.Equal(t, &maxP, r.MaxPrice())
}

func TestNewSearch_Invalid(t *testing.T) {
	_, err := NewSearch("   ", nil, nil, "", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewSearch(strings.Repeat("a", MaxQueryLength+1), nil, nil, "", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewBrowse(t *testing.T) {
	r, err := NewBrowse(content.Event, nil, -1, "Music", nil, nil, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, content.Event, r.Kind())
	assert.Equal(t, DefaultRadiusKm, r.RadiusKm())
	assert.Equal(t, 2, r.Page())

	_, err = NewBrowse(content.Kind("Business"), nil, 0, "", nil, nil, 1, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	lo, hi := 50.0, 10.0
	_, err = NewBrowse(content.Listing, nil, 0, "", &lo, &hi, 1, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortDistance, ParseSort("Distance"))
	assert.Equal(t, SortPopular, ParseSort("popular"))
	assert.Equal(t, SortRecent, ParseSort("recent"))
	assert.Equal(t, SortRecent, ParseSort(""))
	assert.Equal(t, SortRecent, ParseSort("cheapest"))
}
