package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-app/nexa/internal/domain/catalog"
	domcontent "github.com/nexa-app/nexa/internal/domain/content"
)

// blockingSource waits for cancellation and records whether it saw it.
type blockingSource struct {
	kind      domcontent.Kind
	cancelled chan struct{}
}

func (s *blockingSource) Kind() domcontent.Kind { return s.kind }

func (s *blockingSource) FetchActive(ctx context.Context, _ string) ([]domcontent.Item, error) {
	select {
	case <-ctx.Done():
		close(s.cancelled)
		return nil, ctx.Err()
	case <-time.After(5 * time.Second):
		return nil, nil
	}
}

type failingSource struct{ err error }

func (s *failingSource) Kind() domcontent.Kind { return domcontent.Offer }

func (s *failingSource) FetchActive(context.Context, string) ([]domcontent.Item, error) {
	return nil, s.err
}

func TestRegistry_FetchAll_OrderAndKinds(t *testing.T) {
	store := &fakeStorage{
		listings: []catalog.Listing{listing("bike", "Vehicles", catalog.ListingActive, testNow)},
		events:   []catalog.Event{{Title: "gig"}},
		offers:   []catalog.Offer{{Title: "sale", EndDate: testNow.Add(time.Hour)}},
	}

	batches, err := NewRegistry(store, FixedClock(testNow)).FetchAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, batches, 3)

	assert.Equal(t, domcontent.Listing, batches[0].Kind)
	assert.Equal(t, domcontent.Event, batches[1].Kind)
	assert.Equal(t, domcontent.Offer, batches[2].Kind)
	assert.Equal(t, "bike", batches[0].Items[0].Title)
	assert.Equal(t, "gig", batches[1].Items[0].Title)
	assert.Equal(t, "sale", batches[2].Items[0].Title)
}

func TestRegistry_FetchAll_FailFastCancelsSiblings(t *testing.T) {
	boom := errors.New("db down")
	slow := &blockingSource{kind: domcontent.Listing, cancelled: make(chan struct{})}
	reg := NewRegistryFromSources(slow, &failingSource{err: boom})

	batches, err := reg.FetchAll(context.Background(), "")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, batches)

	select {
	case <-slow.cancelled:
	case <-time.After(time.Second):
		t.Fatal("sibling fetch was not cancelled")
	}
}

func TestRegistry_Source(t *testing.T) {
	reg := NewRegistry(&fakeStorage{}, nil)

	src, err := reg.Source(domcontent.Event)
	require.NoError(t, err)
	assert.Equal(t, domcontent.Event, src.Kind())

	_, err = reg.Source(domcontent.Kind("Business"))
	assert.Error(t, err)
}
