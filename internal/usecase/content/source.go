// Package content adapts raw listing, event and offer records into the
// unified content.Item projection, one Source per kind.
package content

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/catalog"
	domcontent "github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/geo"
	"github.com/nexa-app/nexa/internal/logger"
	"github.com/nexa-app/nexa/internal/metrics"
)

// Source fetches the active items of one content kind.
type Source interface {
	Kind() domcontent.Kind
	FetchActive(ctx context.Context, category string) ([]domcontent.Item, error)
}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

// ListingSource adapts listings. Active means status == Active.
type ListingSource struct {
	store ListingStore
}

// NewListingSource creates a listing source.
func NewListingSource(store ListingStore) *ListingSource {
	return &ListingSource{store: store}
}

// Kind implements Source.
func (s *ListingSource) Kind() domcontent.Kind { return domcontent.Listing }

// FetchActive returns active listings, newest first.
func (s *ListingSource) FetchActive(ctx context.Context, category string) ([]domcontent.Item, error) {
	return s.fetch(ctx, category, nil)
}

// FetchInPriceBand returns active listings whose price range overlaps [minPrice, maxPrice],
// newest first. A listing is kept when PriceMax >= minPrice and PriceMin <= maxPrice;
// a missing bound on the listing side fails the comparison. Nil request bounds are ignored.
func (s *ListingSource) FetchInPriceBand(
	ctx context.Context, category string, minPrice, maxPrice *float64,
) ([]domcontent.Item, error) {
	return s.fetch(ctx, category, func(l *catalog.Listing) bool {
		if minPrice != nil && (l.PriceMax == nil || *l.PriceMax < *minPrice) {
			return false
		}
		if maxPrice != nil && (l.PriceMin == nil || *l.PriceMin > *maxPrice) {
			return false
		}
		return true
	})
}

func (s *ListingSource) fetch(
	ctx context.Context, category string, keep func(*catalog.Listing) bool,
) ([]domcontent.Item, error) {
	start := time.Now()
	rows, err := s.store.FetchActiveListings(ctx, category)
	observeFetch(ctx, domcontent.Listing, start, err)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w: %w", domain.ErrStorage, err)
	}

	items := make([]domcontent.Item, 0, len(rows))
	for i := range rows {
		l := &rows[i]
		if !l.IsActive() || !categoryMatches(l.Category, category) {
			continue
		}
		if keep != nil && !keep(l) {
			continue
		}
		items = append(items, listingItem(l))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// EventSource adapts events. Active means no end date or an end date after now.
type EventSource struct {
	store EventStore
	now   Clock
}

// NewEventSource creates an event source. A nil clock uses time.Now.
func NewEventSource(store EventStore, now Clock) *EventSource {
	if now == nil {
		now = time.Now
	}
	return &EventSource{store: store, now: now}
}

// Kind implements Source.
func (s *EventSource) Kind() domcontent.Kind { return domcontent.Event }

// FetchActive returns active events ordered by start date.
func (s *EventSource) FetchActive(ctx context.Context, category string) ([]domcontent.Item, error) {
	start := time.Now()
	rows, err := s.store.FetchActiveEvents(ctx, category)
	observeFetch(ctx, domcontent.Event, start, err)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w: %w", domain.ErrStorage, err)
	}

	now := s.now()
	active := make([]*catalog.Event, 0, len(rows))
	for i := range rows {
		e := &rows[i]
		if e.IsActive(now) && categoryMatches(e.Category, category) {
			active = append(active, e)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartDate.Before(active[j].StartDate)
	})

	items := make([]domcontent.Item, len(active))
	for i, e := range active {
		items[i] = eventItem(e)
	}
	return items, nil
}

// OfferSource adapts offers. Active means the end date is strictly after now.
type OfferSource struct {
	store OfferStore
	now   Clock
}

// NewOfferSource creates an offer source. A nil clock uses time.Now.
func NewOfferSource(store OfferStore, now Clock) *OfferSource {
	if now == nil {
		now = time.Now
	}
	return &OfferSource{store: store, now: now}
}

// Kind implements Source.
func (s *OfferSource) Kind() domcontent.Kind { return domcontent.Offer }

// FetchActive returns active offers, soonest-ending first.
func (s *OfferSource) FetchActive(ctx context.Context, category string) ([]domcontent.Item, error) {
	start := time.Now()
	rows, err := s.store.FetchActiveOffers(ctx, category)
	observeFetch(ctx, domcontent.Offer, start, err)
	if err != nil {
		return nil, fmt.Errorf("fetch offers: %w: %w", domain.ErrStorage, err)
	}

	now := s.now()
	active := make([]*catalog.Offer, 0, len(rows))
	for i := range rows {
		o := &rows[i]
		if o.IsActive(now) && categoryMatches(o.Category, category) {
			active = append(active, o)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].EndDate.Before(active[j].EndDate)
	})

	items := make([]domcontent.Item, len(active))
	for i, o := range active {
		items[i] = offerItem(o)
	}
	return items, nil
}

// categoryMatches is an exact, case-sensitive comparison; an empty filter matches all.
func categoryMatches(itemCategory, filter string) bool {
	return filter == "" || itemCategory == filter
}

func observeFetch(ctx context.Context, kind domcontent.Kind, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
		logger.FromContext(ctx).Warn("Content fetch failed",
			zap.String("kind", string(kind)), zap.Error(err))
	}
	metrics.SourceFetchDuration.WithLabelValues(string(kind), status).Observe(time.Since(start).Seconds())
}

func listingItem(l *catalog.Listing) domcontent.Item {
	price := l.Price
	if price == nil {
		price = l.PriceMin
	}
	var image string
	if len(l.ImageURLs) > 0 {
		image = l.ImageURLs[0]
	}
	return domcontent.Item{
		Kind:        domcontent.Listing,
		ID:          l.ID,
		Title:       l.Title,
		Description: deref(l.Description),
		Category:    l.Category,
		Tags:        l.Tags,
		ImageURL:    image,
		Position:    position(l.Latitude, l.Longitude),
		Price:       price,
		LikeCount:   l.LikeCount,
		SaveCount:   l.SaveCount,
		CreatedAt:   l.CreatedAt,
		OwnerName:   deref(l.BusinessName),
	}
}

func eventItem(e *catalog.Event) domcontent.Item {
	return domcontent.Item{
		Kind:        domcontent.Event,
		ID:          e.ID,
		Title:       e.Title,
		Description: deref(e.Description),
		Category:    e.Category,
		Tags:        e.Tags,
		ImageURL:    deref(e.ImageURL),
		Position:    position(e.Latitude, e.Longitude),
		Price:       e.Price,
		LikeCount:   e.LikeCount,
		SaveCount:   e.SaveCount,
		CreatedAt:   e.CreatedAt,
		OwnerName:   deref(e.BusinessName),
	}
}

func offerItem(o *catalog.Offer) domcontent.Item {
	return domcontent.Item{
		Kind:        domcontent.Offer,
		ID:          o.ID,
		Title:       o.Title,
		Description: deref(o.Description),
		Category:    o.Category,
		Tags:        o.Tags,
		ImageURL:    deref(o.ImageURL),
		Position:    position(o.Latitude, o.Longitude),
		Price:       o.DiscountedPrice,
		LikeCount:   o.LikeCount,
		SaveCount:   o.SaveCount,
		CreatedAt:   o.CreatedAt,
		OwnerName:   deref(o.BusinessName),
	}
}

// position returns nil unless both coordinates are present.
func position(lat, lon *float64) *geo.Coordinate {
	if lat == nil || lon == nil {
		return nil
	}
	return &geo.Coordinate{Latitude: *lat, Longitude: *lon}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
