package content

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nexa-app/nexa/internal/domain/catalog"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

// fakeStorage implements Storage for tests.
type fakeStorage struct {
	listings []catalog.Listing
	events   []catalog.Event
	offers   []catalog.Offer

	listingsErr error
	eventsErr   error
	offersErr   error

	lastCategory string
}

func (f *fakeStorage) FetchActiveListings(_ context.Context, category string) ([]catalog.Listing, error) {
	f.lastCategory = category
	return f.listings, f.listingsErr
}

func (f *fakeStorage) FetchActiveEvents(_ context.Context, _ string) ([]catalog.Event, error) {
	return f.events, f.eventsErr
}

func (f *fakeStorage) FetchActiveOffers(_ context.Context, _ string) ([]catalog.Offer, error) {
	return f.offers, f.offersErr
}

func ptr[T any](v T) *T { return &v }

func listing(title, category string, status catalog.ListingStatus, created time.Time) catalog.Listing {
	return catalog.Listing{
		ID:        uuid.New(),
		Title:     title,
		Category:  category,
		Status:    status,
		CreatedAt: created,
	}
}
