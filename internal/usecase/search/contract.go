package search

import (
	"context"

	"github.com/nexa-app/nexa/internal/domain/content"
)

// Fetcher gathers the active items of every kind in one fail-fast call.
type Fetcher interface {
	FetchAll(ctx context.Context, category string) ([]content.Batch, error)
}
