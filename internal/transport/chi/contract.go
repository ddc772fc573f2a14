package chi

import (
	"context"

	"github.com/nexa-app/nexa/internal/domain/draft"
	"github.com/nexa-app/nexa/internal/domain/page"
	"github.com/nexa-app/nexa/internal/domain/ranking"
	"github.com/nexa-app/nexa/internal/domain/request"
	healthuc "github.com/nexa-app/nexa/internal/usecase/health"
)

// Discoverer serves the mixed discovery feed.
type Discoverer interface {
	Discover(ctx context.Context, req *request.Discover) (page.Page, error)
}

// Searcher serves free-text search.
type Searcher interface {
	Search(ctx context.Context, req *request.Search) (ranking.SearchOutcome, error)
}

// Recommender serves oracle-backed recommendations. It never fails.
type Recommender interface {
	Recommend(ctx context.Context, req *request.Recommend) []ranking.Result
}

// Drafter proposes a listing from a product photo.
type Drafter interface {
	FromImage(ctx context.Context, imageBase64 string) (draft.Draft, error)
}

// Browser pages the active items of a single kind.
type Browser interface {
	Browse(ctx context.Context, req *request.Browse) (page.Page, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
