// Package browse lists a single content kind, optionally around a position.
package browse

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

const operation = "browse"

// Service browses listings, events and offers.
type Service struct {
	listings ListingSource
	events   Source
	offers   Source
}

// New creates a browse service.
func New(listings ListingSource, events, offers Source) *Service {
	return &Service{listings: listings, events: events, offers: offers}
}

// Browse returns one page of a single kind. With a position, items outside the
// radius or without coordinates are dropped and the rest sorted nearest first;
// otherwise kind-native order is kept. Price bounds apply to listings only.
func (s *Service) Browse(ctx context.Context, req *request.Browse) (page.Page, error) {
	items, err := s.fetch(ctx, req)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		return page.Page{}, fmt.Errorf("browse %s: %w", req.Kind(), err)
	}

	entries := make([]page.Entry, 0, len(items))
	if pos := req.Position(); pos != nil {
		for _, it := range items {
			if it.Position == nil {
				continue
			}
			d := geo.DistanceKm(*pos, *it.Position)
			if d <= req.RadiusKm() {
				entries = append(entries, page.Entry{Item: it, DistanceKm: d})
			}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].DistanceKm < entries[j].DistanceKm
		})
	} else {
		for _, it := range items {
			entries = append(entries, page.Entry{Item: it})
		}
	}

	result := page.New(entries, req.Page(), req.PageSize())
	metrics.RankedItems.WithLabelValues(operation).Observe(float64(len(result.Items)))
	logger.FromContext(ctx).Debug("Browse page built",
		zap.String("kind", string(req.Kind())),
		zap.Int("total", result.TotalCount),
	)
	return result, nil
}

func (s *Service) fetch(ctx context.Context, req *request.Browse) ([]content.Item, error) {
	switch req.Kind() {
	case content.Listing:
		if req.MinPrice() != nil || req.MaxPrice() != nil {
			return s.listings.FetchInPriceBand(ctx, req.Category(), req.MinPrice(), req.MaxPrice())
		}
		return s.listings.FetchActive(ctx, req.Category())
	case content.Event:
		return s.events.FetchActive(ctx, req.Category())
	case content.Offer:
		return s.offers.FetchActive(ctx, req.Category())
	default:
		return nil, fmt.Errorf("unsupported kind %q", req.Kind())
	}
}
