// Package discovery builds the location-aware feed that merges listings,
// events and offers into one sorted, paginated page.
package discovery

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/geo"
	"github.com/nexa-app/nexa/internal/domain/page"
	"github.com/nexa-app/nexa/internal/domain/request"
	"github.com/nexa-app/nexa/internal/logger"
	"github.com/nexa-app/nexa/internal/metrics"
)

const operation = "discover"

// Service merges the three content streams into a discovery page.
type Service struct {
	fetcher Fetcher
}

// New creates a discovery service.
func New(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Discover returns one page of the merged feed.
//
// Each kind is capped at PageSize before merging, after radius filtering when a
// position is given. The cap bounds memory but means an item's rank within its
// own kind decides whether it survives, and TotalCount counts the capped set.
func (s *Service) Discover(ctx context.Context, req *request.Discover) (page.Page, error) {
	batches, err := s.fetcher.FetchAll(ctx, req.Category())
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		return page.Page{}, fmt.Errorf("discover: %w", err)
	}

	pos := req.Position()
	var merged []page.Entry
	for _, b := range batches {
		kept := b.Items
		if pos != nil {
			kept = withinRadius(kept, *pos, req.RadiusKm())
		}
		for _, it := range page.Cap(kept, req.PageSize()) {
			merged = append(merged, page.Entry{
				Item:       it,
				DistanceKm: geo.DistanceOrZero(pos, it.Position),
			})
		}
	}

	sortEntries(merged, req.SortBy())
	result := page.New(merged, req.Page(), req.PageSize())

	metrics.RankedItems.WithLabelValues(operation).Observe(float64(len(result.Items)))
	logger.FromContext(ctx).Debug("Discovery page built",
		zap.Int("total", result.TotalCount),
		zap.Int("returned", len(result.Items)),
		zap.String("sort", string(req.SortBy())),
		zap.Bool("positioned", pos != nil),
	)
	return result, nil
}

// withinRadius drops items without coordinates and items farther than radiusKm (inclusive).
func withinRadius(items []content.Item, pos geo.Coordinate, radiusKm float64) []content.Item {
	kept := make([]content.Item, 0, len(items))
	for _, it := range items {
		if it.Position == nil {
			continue
		}
		if geo.DistanceKm(pos, *it.Position) <= radiusKm {
			kept = append(kept, it)
		}
	}
	return kept
}

// sortEntries orders entries in place. The sort is stable, so ties keep merge order.
func sortEntries(entries []page.Entry, by request.SortBy) {
	var less func(a, b *page.Entry) bool
	switch by {
	case request.SortDistance:
		less = func(a, b *page.Entry) bool { return a.DistanceKm < b.DistanceKm }
	case request.SortPopular:
		less = func(a, b *page.Entry) bool { return a.Item.Popularity() > b.Item.Popularity() }
	default:
		less = func(a, b *page.Entry) bool { return a.Item.CreatedAt.After(b.Item.CreatedAt) }
	}
	sort.SliceStable(entries, func(i, j int) bool { return less(&entries[i], &entries[j]) })
}
