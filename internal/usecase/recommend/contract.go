package recommend

import (
	"context"

	"github.com/nexa-app/nexa/internal/domain/recommend"
)

// Suggester asks the generative oracle for suggestions.
type Suggester interface {
	Suggest(ctx context.Context, prompt recommend.Prompt) ([]recommend.Suggestion, error)
}
