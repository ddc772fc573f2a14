package nexa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexa-app/nexa/internal/db/postgres"
	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/page"
	"github.com/nexa-app/nexa/internal/domain/ranking"
	"github.com/nexa-app/nexa/internal/domain/request"
	catalogrepo "github.com/nexa-app/nexa/internal/repository/catalog"
	browseuc "github.com/nexa-app/nexa/internal/usecase/browse"
	contentuc "github.com/nexa-app/nexa/internal/usecase/content"
	discoveryuc "github.com/nexa-app/nexa/internal/usecase/discovery"
	healthuc "github.com/nexa-app/nexa/internal/usecase/health"
	recommenduc "github.com/nexa-app/nexa/internal/usecase/recommend"
	searchuc "github.com/nexa-app/nexa/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultQueryTimeout     = 5 * time.Second
)

// Internal interfaces, swapped for fakes in tests.
type discoveryUseCase interface {
	Discover(ctx context.Context, req *request.Discover) (page.Page, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Search) (ranking.SearchOutcome, error)
}

type recommendUseCase interface {
	Recommend(ctx context.Context, req *request.Recommend) []ranking.Result
}

type browseUseCase interface {
	Browse(ctx context.Context, req *request.Browse) (page.Page, error)
}

// Client is the Nexa SDK entry point.
type Client struct {
	pg           *postgres.Client
	ownsDB       bool
	discoverySvc discoveryUseCase
	searchSvc    searchUseCase
	recommendSvc recommendUseCase
	browseSvc    browseUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client over the catalog database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		queryTimeout: defaultQueryTimeout,
		now:          time.Now,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	pg, owns, err := openCatalog(cfg)
	if err != nil {
		return nil, err
	}

	if err := pg.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		if owns {
			_ = pg.Close()
		}
		return nil, fmt.Errorf("nexa: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if owns {
			_ = pg.Close()
		}
		return nil, err
	}

	c := wireClient(pg, cfg, obs)
	c.ownsDB = owns
	return c, nil
}

func openCatalog(cfg *clientConfig) (*postgres.Client, bool, error) {
	switch {
	case cfg.db != nil:
		return postgres.NewFromDB(cfg.db), false, nil
	case cfg.dsn != "":
		pg, err := postgres.Open(postgres.Config{DSN: cfg.dsn})
		if err != nil {
			return nil, false, fmt.Errorf("nexa: open postgres: %w", err)
		}
		return pg, true, nil
	default:
		return nil, false, errors.New("nexa: catalog database required (use WithPostgres or WithDB)")
	}
}

func wireClient(pg *postgres.Client, cfg *clientConfig, obs *observer) *Client {
	repo := catalogrepo.New(pg.DB(), cfg.queryTimeout).WithClock(cfg.now)
	listings := contentuc.NewListingSource(repo)
	events := contentuc.NewEventSource(repo, cfg.now)
	offers := contentuc.NewOfferSource(repo, cfg.now)
	registry := contentuc.NewRegistryFromSources(listings, events, offers)

	// Noop suggester if none is given: recommendations serve the fallback.
	var suggester recommenduc.Suggester = noopSuggester{}
	if cfg.suggester != nil {
		suggester = &suggesterAdapter{inner: cfg.suggester}
	}

	return &Client{
		pg:           pg,
		discoverySvc: discoveryuc.New(registry),
		searchSvc:    searchuc.New(registry),
		recommendSvc: recommenduc.New(suggester, cfg.oracleTimeout),
		browseSvc:    browseuc.New(listings, events, offers),
		healthSvc:    healthuc.New(pg, nil, nil),
		obs:          obs,
	}
}

// Close releases the connection pool when the client opened it.
func (c *Client) Close() {
	if c.pg != nil && c.ownsDB {
		_ = c.pg.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, 0, err) }()

	if err = c.pg.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Discover returns one page of the mixed discovery feed.
func (c *Client) Discover(ctx context.Context, q DiscoverQuery) (_ Page, err error) {
	start := time.Now()
	var out Page
	defer func() { c.obs.observe("discover", start, len(out.Items), err) }()

	number, size := q.pageOrDefault()
	req, err := request.NewDiscover(
		q.Near.toDomain(), q.RadiusKm, strings.TrimSpace(q.Category),
		request.ParseSort(string(q.SortBy)), number, size,
	)
	if err != nil {
		return Page{}, fmt.Errorf("discover: %w", err)
	}
	p, err := c.discoverySvc.Discover(ctx, &req)
	if err != nil {
		return Page{}, fmt.Errorf("discover: %w", err)
	}
	out = pageFromDomain(p)
	return out, nil
}

// Search ranks active items against free text.
func (c *Client) Search(ctx context.Context, q SearchQuery) (_ SearchResult, err error) {
	start := time.Now()
	var out SearchResult
	defer func() { c.obs.observe("search", start, len(out.Results), err) }()

	req, err := request.NewSearch(
		q.Text, q.Near.toDomain(), q.RadiusKm, strings.TrimSpace(q.Category), q.MinPrice, q.MaxPrice,
	)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	outcome, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	out = SearchResult{
		InterpretedIntent: outcome.InterpretedIntent,
		Results:           resultsFromDomain(outcome.Results),
	}
	return out, nil
}

// Recommend returns suggestions, or the fallback item when the suggester fails.
// Only a malformed UserID is an error.
func (c *Client) Recommend(ctx context.Context, q RecommendQuery) (_ []Result, err error) {
	start := time.Now()
	var out []Result
	defer func() { c.obs.observe("recommend", start, len(out), err) }()

	userID := uuid.Nil
	if q.UserID != "" {
		userID, err = uuid.Parse(q.UserID)
		if err != nil {
			return nil, fmt.Errorf("recommend: %w: malformed user id", domain.ErrInvalidInput)
		}
	}

	out = resultsFromDomain(c.recommendSvc.Recommend(ctx, &request.Recommend{
		UserID:      userID,
		Position:    q.Near.toDomain(),
		Interests:   q.Interests,
		TimeContext: q.TimeContext,
	}))
	return out, nil
}

// Browse pages the active items of one kind in kind-native order, or by
// distance when Near is set.
func (c *Client) Browse(ctx context.Context, kind Kind, q BrowseQuery) (_ Page, err error) {
	start := time.Now()
	var out Page
	defer func() { c.obs.observe("browse", start, len(out.Items), err) }()

	k, err := content.ParseKind(string(kind))
	if err != nil {
		return Page{}, fmt.Errorf("browse: %w: %s", domain.ErrInvalidInput, err.Error())
	}
	number, size := q.pageOrDefault()
	req, err := request.NewBrowse(
		k, q.Near.toDomain(), q.RadiusKm, strings.TrimSpace(q.Category),
		q.MinPrice, q.MaxPrice, number, size,
	)
	if err != nil {
		return Page{}, fmt.Errorf("browse: %w", err)
	}
	p, err := c.browseSvc.Browse(ctx, &req)
	if err != nil {
		return Page{}, fmt.Errorf("browse: %w", err)
	}
	out = pageFromDomain(p)
	return out, nil
}
