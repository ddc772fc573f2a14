// Package recommend turns oracle suggestions into ranked results. It never
// fails: any oracle problem yields a single canned recommendation.
package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/ranking"
	"github.com/nexa-app/nexa/internal/domain/recommend"
	"github.com/nexa-app/nexa/internal/domain/request"
	"github.com/nexa-app/nexa/internal/logger"
	"github.com/nexa-app/nexa/internal/metrics"
)

const (
	operation = "recommend"

	// DefaultTimeout bounds a single oracle call.
	DefaultTimeout = 30 * time.Second
)

// Fallback recommendation served when the oracle is unavailable.
const (
	FallbackTitle       = "Sample Recommended Product"
	FallbackDescription = "A product matched to your interests and location."
	FallbackCategory    = "Electronics"
	FallbackRelevance   = 0.92
	FallbackDistanceKm  = 1.5
)

// Service composes recommendations.
type Service struct {
	oracle  Suggester
	timeout time.Duration
}

// New creates a recommendation service. timeout <= 0 uses DefaultTimeout.
func New(oracle Suggester, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{oracle: oracle, timeout: timeout}
}

// Recommend returns oracle suggestions as results, or exactly one fallback
// result when the oracle errors, times out or returns nothing usable.
func (s *Service) Recommend(ctx context.Context, req *request.Recommend) []ranking.Result {
	log := logger.FromContext(ctx)
	prompt := recommend.NewPrompt(req.Position, req.Interests, req.TimeContext)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	suggestions, err := s.oracle.Suggest(callCtx, prompt)
	if err != nil {
		log.Error("Recommendation oracle failed, serving fallback",
			zap.String("user_id", req.UserID.String()),
			zap.Error(err),
		)
		return fallback()
	}

	results := make([]ranking.Result, 0, len(suggestions))
	for _, sg := range suggestions {
		results = append(results, toResult(sg))
	}
	if len(results) == 0 {
		log.Warn("Recommendation oracle returned no suggestions, serving fallback",
			zap.String("user_id", req.UserID.String()))
		return fallback()
	}

	metrics.RankedItems.WithLabelValues(operation).Observe(float64(len(results)))
	return results
}

// toResult gives the suggestion a fresh identity. Unknown content types become listings.
func toResult(sg recommend.Suggestion) ranking.Result {
	kind, err := content.ParseKind(sg.ContentType)
	if err != nil {
		kind = content.Listing
	}
	item := content.Item{
		Kind:        kind,
		ID:          uuid.New(),
		Title:       sg.Title,
		Description: sg.Description,
		Category:    sg.Category,
	}
	return ranking.NewResult(item, sg.RelevanceScore, 0)
}

func fallback() []ranking.Result {
	metrics.OracleFallbacksTotal.WithLabelValues(operation).Inc()
	item := content.Item{
		Kind:        content.Listing,
		ID:          uuid.New(),
		Title:       FallbackTitle,
		Description: FallbackDescription,
		Category:    FallbackCategory,
	}
	return []ranking.Result{ranking.NewResult(item, FallbackRelevance, FallbackDistanceKm)}
}
