package draft

import (
	"context"

	"github.com/nexa-app/nexa/internal/domain/draft"
)

// Describer asks the vision oracle to describe a product photo.
type Describer interface {
	Describe(ctx context.Context, imageBase64 string) (draft.Draft, error)
}
