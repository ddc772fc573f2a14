package browse

import (
	"context"

	"github.com/nexa-app/nexa/internal/domain/content"
)

// Source fetches the active items of one kind in kind-native order.
type Source interface {
	FetchActive(ctx context.Context, category string) ([]content.Item, error)
}

// ListingSource additionally filters listings by an overlapping price band.
type ListingSource interface {
	Source
	FetchInPriceBand(ctx context.Context, category string, minPrice, maxPrice *float64) ([]content.Item, error)
}
