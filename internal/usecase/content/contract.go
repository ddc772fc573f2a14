package content

import (
	"context"

	"github.com/nexa-app/nexa/internal/domain/catalog"
)

// ListingStore fetches raw listing records.
type ListingStore interface {
	FetchActiveListings(ctx context.Context, category string) ([]catalog.Listing, error)
}

// EventStore fetches raw event records.
type EventStore interface {
	FetchActiveEvents(ctx context.Context, category string) ([]catalog.Event, error)
}

// OfferStore fetches raw offer records.
type OfferStore interface {
	FetchActiveOffers(ctx context.Context, category string) ([]catalog.Offer, error)
}

// Storage is the full storage collaborator behind the three sources.
type Storage interface {
	ListingStore
	EventStore
	OfferStore
}
