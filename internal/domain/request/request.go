// Package request holds validated inputs of the discovery, search,
// recommendation and browse operations.
package request

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/geo"
	"github.com/nexa-app/nexa/internal/domain/page"
)

// Request limits and defaults.
const (
	DefaultRadiusKm = 10.0
	MaxQueryLength  = 512
)

// Discover is a validated discovery feed request.
type Discover struct {
	position *geo.Coordinate
	radiusKm float64
	category string
	sortBy   SortBy
	page     int
	pageSize int
}

// NewDiscover validates and normalizes discovery parameters.
// radiusKm <= 0 falls back to DefaultRadiusKm; page and pageSize must be >= 1.
func NewDiscover(
	position *geo.Coordinate, radiusKm float64, category string, sortBy SortBy, pageNum, pageSize int,
) (Discover, error) {
	if pageNum < 1 {
		return Discover{}, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidInput, pageNum)
	}
	if pageSize < 1 || pageSize > page.MaxPageSize {
		return Discover{}, fmt.Errorf("%w: pageSize must be between 1 and %d, got %d",
			domain.ErrInvalidInput, page.MaxPageSize, pageSize)
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	if sortBy == "" {
		sortBy = SortRecent
	}
	return Discover{
		position: position,
		radiusKm: radiusKm,
		category: category,
		sortBy:   sortBy,
		page:     pageNum,
		pageSize: pageSize,
	}, nil
}

// Position returns the caller position (nil when absent).
func (r *Discover) Position() *geo.Coordinate { return r.position }

// RadiusKm returns the inclusive search radius.
func (r *Discover) RadiusKm() float64 { return r.radiusKm }

// Category returns the exact category filter ("" = any).
func (r *Discover) Category() string { return r.category }

// SortBy returns the ordering key.
func (r *Discover) SortBy() SortBy { return r.sortBy }

// Page returns the 1-indexed page number.
func (r *Discover) Page() int { return r.page }

// PageSize returns the page size.
func (r *Discover) PageSize() int { return r.pageSize }

// Search is a validated free-text search request.
type Search struct {
	query    string
	position *geo.Coordinate
	radiusKm *float64
	category string
	minPrice *float64
	maxPrice *float64
}

// NewSearch validates a search query. The query must contain at least one token.
func NewSearch(
	query string, position *geo.Coordinate, radiusKm *float64, category string, minPrice, maxPrice *float64,
) (Search, error) {
	if strings.TrimSpace(query) == "" {
		return Search{}, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}
	if len(query) > MaxQueryLength {
		return Search{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidInput, MaxQueryLength)
	}
	return Search{
		query:    query,
		position: position,
		radiusKm: radiusKm,
		category: category,
		minPrice: minPrice,
		maxPrice: maxPrice,
	}, nil
}

// Query returns the raw query text.
func (r *Search) Query() string { return r.query }

// Position returns the caller position (nil when absent).
func (r *Search) Position() *geo.Coordinate { return r.position }

// RadiusKm returns the requested radius. Search reports distance but does not filter on it.
func (r *Search) RadiusKm() *float64 { return r.radiusKm }

// Category returns the exact category filter ("" = any).
func (r *Search) Category() string { return r.category }

// MinPrice returns the lower price bound. Accepted but not applied by search.
func (r *Search) MinPrice() *float64 { return r.minPrice }

// MaxPrice returns the upper price bound. Accepted but not applied by search.
func (r *Search) MaxPrice() *float64 { return r.maxPrice }

// Recommend is a recommendation request.
type Recommend struct {
	UserID      uuid.UUID
	Position    *geo.Coordinate
	Interests   []string
	TimeContext string
}

// Browse is a validated single-kind listing request.
type Browse struct {
	kind     content.Kind
	position *geo.Coordinate
	radiusKm float64
	category string
	minPrice *float64
	maxPrice *float64
	page     int
	pageSize int
}

// NewBrowse validates browse parameters. Price bounds apply to listings only.
func NewBrowse(
	kind content.Kind, position *geo.Coordinate, radiusKm float64, category string,
	minPrice, maxPrice *float64, pageNum, pageSize int,
) (Browse, error) {
	if !kind.IsValid() {
		return Browse{}, fmt.Errorf("%w: unknown content kind %q", domain.ErrInvalidInput, kind)
	}
	if pageNum < 1 {
		return Browse{}, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidInput, pageNum)
	}
	if pageSize < 1 || pageSize > page.MaxPageSize {
		return Browse{}, fmt.Errorf("%w: pageSize must be between 1 and %d, got %d",
			domain.ErrInvalidInput, page.MaxPageSize, pageSize)
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return Browse{}, fmt.Errorf("%w: minPrice must not exceed maxPrice", domain.ErrInvalidInput)
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	return Browse{
		kind:     kind,
		position: position,
		radiusKm: radiusKm,
		category: category,
		minPrice: minPrice,
		maxPrice: maxPrice,
		page:     pageNum,
		pageSize: pageSize,
	}, nil
}

// Kind returns the content kind being browsed.
func (r *Browse) Kind() content.Kind { return r.kind }

// Position returns the caller position (nil when absent).
func (r *Browse) Position() *geo.Coordinate { return r.position }

// RadiusKm returns the inclusive radius applied when a position is given.
func (r *Browse) RadiusKm() float64 { return r.radiusKm }

// Category returns the exact category filter ("" = any).
func (r *Browse) Category() string { return r.category }

// MinPrice returns the lower price bound.
func (r *Browse) MinPrice() *float64 { return r.minPrice }

// MaxPrice returns the upper price bound.
func (r *Browse) MaxPrice() *float64 { return r.maxPrice }

// Page returns the 1-indexed page number.
func (r *Browse) Page() int { return r.page }

// PageSize returns the page size.
func (r *Browse) PageSize() int { return r.pageSize }
