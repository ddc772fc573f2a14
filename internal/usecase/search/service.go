// Package search ranks active content against a free-text query.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/domain/geo"
	"github.com/nexa-app/nexa/internal/domain/ranking"
	"github.com/nexa-app/nexa/internal/domain/request"
	"github.com/nexa-app/nexa/internal/domain/textmatch"
	"github.com/nexa-app/nexa/internal/logger"
	"github.com/nexa-app/nexa/internal/metrics"
)

const (
	operation = "search"

	// IntentPrefix prefixes the query echoed back as the interpreted intent.
	IntentPrefix = "Search for: "
)

// Service scores every active item against a query.
type Service struct {
	fetcher Fetcher
}

// New creates a search service.
func New(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Search returns at most ranking.MaxSearchResults items whose score exceeds
// the candidate threshold, best first. Every active item is a candidate:
// category, radius and price bounds on the request are not applied, and
// distance is reported when both sides have coordinates.
func (s *Service) Search(ctx context.Context, req *request.Search) (ranking.SearchOutcome, error) {
	outcome := ranking.SearchOutcome{
		InterpretedIntent: IntentPrefix + req.Query(),
		Results:           []ranking.Result{},
	}

	batches, err := s.fetcher.FetchAll(ctx, "")
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		return ranking.SearchOutcome{}, fmt.Errorf("search: %w", err)
	}

	terms := textmatch.Tokenize(req.Query())
	pos := req.Position()
	scanned := 0
	for _, b := range batches {
		for _, it := range b.Items {
			scanned++
			score := textmatch.Score(terms, textmatch.Fields{
				Title:       it.Title,
				Description: it.Description,
				Category:    it.Category,
				Tags:        it.Tags,
			})
			if !textmatch.IsCandidate(score) {
				continue
			}
			outcome.Results = append(outcome.Results,
				ranking.NewResult(it, score, geo.DistanceOrZero(pos, it.Position)))
		}
	}

	ranking.SortByRelevance(outcome.Results)
	outcome.Results = ranking.Top(outcome.Results, ranking.MaxSearchResults)

	metrics.RankedItems.WithLabelValues(operation).Observe(float64(len(outcome.Results)))
	logger.FromContext(ctx).Debug("Search ranked",
		zap.Int("terms", len(terms)),
		zap.Int("scanned", scanned),
		zap.Int("matched", len(outcome.Results)),
	)
	return outcome, nil
}
