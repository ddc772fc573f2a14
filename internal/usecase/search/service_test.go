package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/geo"
	"github.com/nexa-app/nexa/internal/domain/ranking"
	"github.com/nexa-app/nexa/internal/domain/request"
)

type fakeFetcher struct {
	batches      []content.Batch
	err          error
	lastCategory string
}

func (f *fakeFetcher) FetchAll(_ context.Context, category string) ([]content.Batch, error) {
	f.lastCategory = category
	return f.batches, f.err
}

func listings(items ...content.Item) *fakeFetcher {
	return &fakeFetcher{batches: []content.Batch{{Kind: content.Listing, Items: items}}}
}

func titled(title string) content.Item {
	return content.Item{Kind: content.Listing, ID: uuid.New(), Title: title}
}

func ptr[T any](v T) *T { return &v }

func mustSearch(t *testing.T, query string, pos *geo.Coordinate) *request.Search {
	t.Helper()
	r, err := request.NewSearch(query, pos, nil, "", nil, nil)
	require.NoError(t, err)
	return &r
}

func titles(results []ranking.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Item.Title
	}
	return out
}

func TestSearch_TitleMatch(t *testing.T) {
	f := listings(titled("Mountain Bike"), titled("Kitchen Table"))

	out, err := New(f).Search(context.Background(), mustSearch(t, "bike", nil))
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Equal(t, "Mountain Bike", out.Results[0].Item.Title)
	assert.InDelta(t, 1.0, out.Results[0].RelevanceScore, 1e-9)
	assert.Zero(t, out.Results[0].DistanceKm)
	assert.Equal(t, "Search for: bike", out.InterpretedIntent)
}

func TestSearch_NoMatchesStillEchoesIntent(t *testing.T) {
	f := listings(titled("Kitchen Table"))

	out, err := New(f).Search(context.Background(), mustSearch(t, "zzzz", nil))
	require.NoError(t, err)
	assert.Empty(t, out.Results)
	assert.NotNil(t, out.Results)
	assert.Equal(t, "Search for: zzzz", out.InterpretedIntent)
}

func TestSearch_ThresholdIsExclusive(t *testing.T) {
	// "guitar" hits the description only (0.5); "lessons" hits nothing.
	// Two terms average to 0.25, below the threshold.
	desc := content.Item{Kind: content.Event, ID: uuid.New(), Title: "Evening show", Description: "live guitar"}
	f := &fakeFetcher{batches: []content.Batch{{Kind: content.Event, Items: []content.Item{desc}}}}

	out, err := New(f).Search(context.Background(), mustSearch(t, "guitar lessons", nil))
	require.NoError(t, err)
	assert.Empty(t, out.Results)

	// A single description hit scores 0.5 and passes.
	out, err = New(f).Search(context.Background(), mustSearch(t, "guitar", nil))
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.InDelta(t, 0.5, out.Results[0].RelevanceScore, 1e-9)
}

func TestSearch_SortsByScoreThenDistance(t *testing.T) {
	origin := &geo.Coordinate{Latitude: 35.70, Longitude: 51.40}
	far := titled("bike far")
	far.Position = &geo.Coordinate{Latitude: 35.90, Longitude: 51.40}
	near := titled("bike near")
	near.Position = &geo.Coordinate{Latitude: 35.71, Longitude: 51.40}
	weak := content.Item{Kind: content.Offer, ID: uuid.New(), Title: "sale", Description: "bike parts"}

	f := &fakeFetcher{batches: []content.Batch{
		{Kind: content.Listing, Items: []content.Item{far, near}},
		{Kind: content.Offer, Items: []content.Item{weak}},
	}}

	out, err := New(f).Search(context.Background(), mustSearch(t, "bike", origin))
	require.NoError(t, err)

	assert.Equal(t, []string{"bike near", "bike far", "sale"}, titles(out.Results))
	assert.Less(t, out.Results[0].DistanceKm, out.Results[1].DistanceKm)
	assert.Zero(t, out.Results[2].DistanceKm, "item without coordinates has distance 0")
}

func TestSearch_CapsAtTwenty(t *testing.T) {
	items := make([]content.Item, 30)
	for i := range items {
		items[i] = titled(fmt.Sprintf("bike %d", i))
	}

	out, err := New(listings(items...)).Search(context.Background(), mustSearch(t, "bike", nil))
	require.NoError(t, err)
	assert.Len(t, out.Results, ranking.MaxSearchResults)
	for _, r := range out.Results {
		assert.GreaterOrEqual(t, r.RelevanceScore, 0.0)
		assert.LessOrEqual(t, r.RelevanceScore, 1.0)
	}
}

func TestSearch_PriceBoundsAreIgnored(t *testing.T) {
	cheap := titled("bike cheap")
	cheap.Price = ptr(5.0)
	pricey := titled("bike pricey")
	pricey.Price = ptr(5000.0)
	f := listings(cheap, pricey)

	r, err := request.NewSearch("bike", nil, ptr(1.0), "", ptr(100.0), ptr(200.0))
	require.NoError(t, err)

	out, err := New(f).Search(context.Background(), &r)
	require.NoError(t, err)
	assert.Len(t, out.Results, 2)
}

func TestSearch_RadiusDoesNotFilter(t *testing.T) {
	farAway := titled("bike")
	farAway.Position = &geo.Coordinate{Latitude: 51.5, Longitude: -0.12}
	f := listings(farAway)

	r, err := request.NewSearch("bike", &geo.Coordinate{Latitude: 35.7, Longitude: 51.4}, ptr(1.0), "", nil, nil)
	require.NoError(t, err)

	out, err := New(f).Search(context.Background(), &r)
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Greater(t, out.Results[0].DistanceKm, 1000.0)
}

func TestSearch_CategoryIsIgnored(t *testing.T) {
	f := listings(titled("Mountain Bike"))
	f.lastCategory = "unset"
	r, err := request.NewSearch("bike", nil, nil, "Vehicles", nil, nil)
	require.NoError(t, err)

	out, err := New(f).Search(context.Background(), &r)
	require.NoError(t, err)
	assert.Empty(t, f.lastCategory)
	assert.Len(t, out.Results, 1)
}

func TestSearch_StorageFailure(t *testing.T) {
	f := &fakeFetcher{err: fmt.Errorf("fetch listings: %w: %w", domain.ErrStorage, errors.New("conn reset"))}

	_, err := New(f).Search(context.Background(), mustSearch(t, "bike", nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
