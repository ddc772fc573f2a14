package draft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/draft"
)

type fakeDescriber struct {
	out       draft.Draft
	err       error
	block     bool
	lastImage string
}

func (f *fakeDescriber) Describe(ctx context.Context, image string) (draft.Draft, error) {
	f.lastImage = image
	if f.block {
		<-ctx.Done()
		return draft.Draft{}, ctx.Err()
	}
	return f.out, f.err
}

func TestFromImage_Normalizes(t *testing.T) {
	lo, hi := 120.0, 180.0
	oracle := &fakeDescriber{out: draft.Draft{
		Title:           "Road Bike",
		Category:        "vehicles",
		Tags:            []string{"bike", ""},
		PriceMin:        &lo,
		PriceMax:        &hi,
		ConfidenceScore: 1.3,
	}}

	d, err := New(oracle, time.Second).FromImage(context.Background(), "aGVsbG8=")
	require.NoError(t, err)

	assert.Equal(t, "aGVsbG8=", oracle.lastImage)
	assert.Equal(t, "Road Bike", d.Title)
	assert.Equal(t, "Vehicles", d.Category)
	assert.Equal(t, []string{"bike"}, d.Tags)
	assert.Equal(t, 1.0, d.ConfidenceScore)
	require.NotNil(t, d.PriceMin)
	assert.Equal(t, 120.0, *d.PriceMin)
}

func TestFromImage_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		oracle *fakeDescriber
	}{
		{"oracle error", &fakeDescriber{err: domain.ErrOracle}},
		{"timeout", &fakeDescriber{block: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.oracle, 20*time.Millisecond).FromImage(context.Background(), "aGVsbG8=")
			require.NoError(t, err)
			assert.Equal(t, Fallback(), d)
			assert.Equal(t, "Product", d.Title)
			assert.Equal(t, "Other", d.Category)
			assert.Equal(t, 10.0, *d.PriceMin)
			assert.Equal(t, 100.0, *d.PriceMax)
			assert.Zero(t, d.ConfidenceScore)
			assert.Empty(t, d.InterpretedIntent)
		})
	}
}

func TestFromImage_EmptyImage(t *testing.T) {
	oracle := &fakeDescriber{}
	_, err := New(oracle, time.Second).FromImage(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, oracle.lastImage)
}
