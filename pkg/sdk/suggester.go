package nexa

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexa-app/nexa/internal/domain/recommend"
)

// Suggester generates recommendation candidates for a prompt.
// Implementations typically wrap a chat-completion model.
type Suggester interface {
	Suggest(ctx context.Context, prompt Prompt) ([]Suggestion, error)
}

// Prompt is the normalized context a recommendation is generated for.
type Prompt struct {
	Near        *Position
	Interests   []string
	TimeContext string
}

// Suggestion is one candidate proposed by a Suggester.
type Suggestion struct {
	Kind           Kind
	Title          string
	Description    string
	Category       string
	RelevanceScore float64
}

// suggesterAdapter wraps a public Suggester to satisfy the recommendation use case.
type suggesterAdapter struct {
	inner Suggester
}

func (a *suggesterAdapter) Suggest(ctx context.Context, p recommend.Prompt) ([]recommend.Suggestion, error) {
	out, err := a.inner.Suggest(ctx, Prompt{
		Near:        positionFromDomain(p.Position),
		Interests:   p.Interests,
		TimeContext: p.TimeContext,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	res := make([]recommend.Suggestion, len(out))
	for i, s := range out {
		res[i] = recommend.Suggestion{
			ContentType:    string(s.Kind),
			Title:          s.Title,
			Description:    s.Description,
			Category:       s.Category,
			RelevanceScore: s.RelevanceScore,
		}
	}
	return res, nil
}

// noopSuggester always fails, so recommendations serve their fallback.
type noopSuggester struct{}

func (noopSuggester) Suggest(context.Context, recommend.Prompt) ([]recommend.Suggestion, error) {
	return nil, errors.New("nexa: suggester not configured (use WithSuggester)")
}
