package content

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	domcontent "github.com/nexa-app/nexa/internal/domain/content"
)

// Registry holds one Source per content kind.
type Registry struct {
	sources []Source
}

// NewRegistry wires the three sources over a single storage collaborator.
func NewRegistry(store Storage, now Clock) *Registry {
	return NewRegistryFromSources(
		NewListingSource(store),
		NewEventSource(store, now),
		NewOfferSource(store, now),
	)
}

// NewRegistryFromSources builds a registry from explicit sources, kept in the given order.
func NewRegistryFromSources(sources ...Source) *Registry {
	return &Registry{sources: sources}
}

// Source returns the source of kind.
func (r *Registry) Source(kind domcontent.Kind) (Source, error) {
	for _, s := range r.sources {
		if s.Kind() == kind {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no source for kind %q", kind)
}

// FetchAll fetches every kind concurrently and returns one batch per source in
// registry order. The first failure cancels the remaining fetches and is returned;
// no partial result is produced.
func (r *Registry) FetchAll(ctx context.Context, category string) ([]domcontent.Batch, error) {
	batches := make([]domcontent.Batch, len(r.sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range r.sources {
		g.Go(func() error {
			items, err := src.FetchActive(gctx, category)
			if err != nil {
				return err
			}
			batches[i] = domcontent.Batch{Kind: src.Kind(), Items: items}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

// FixedClock returns a Clock pinned to t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
