package nexa

import (
	"time"

	"github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/geo"
	"github.com/nexa-app/nexa/internal/domain/page"
	"github.com/nexa-app/nexa/internal/domain/ranking"
)

// Kind tags the marketable entity an item came from.
type Kind string

// Content kinds.
const (
	KindListing Kind = Kind(content.Listing)
	KindEvent   Kind = Kind(content.Event)
	KindOffer   Kind = Kind(content.Offer)
)

// SortBy orders a discovery page.
type SortBy string

// Discovery sort keys. The zero value sorts by recency.
const (
	SortRecent   SortBy = "recent"
	SortPopular  SortBy = "popular"
	SortDistance SortBy = "distance"
)

// Position is a WGS-84 point in degrees.
type Position struct {
	Lat float64
	Lon float64
}

// Item is one listing, event or offer.
type Item struct {
	Kind        Kind
	ID          string
	Title       string
	Description string
	Category    string
	Tags        []string
	ImageURL    string
	Position    *Position
	Price       *float64
	LikeCount   int
	SaveCount   int
	CreatedAt   time.Time
	OwnerName   string
}

// PageEntry is an item with its distance from the caller (0 when unknown).
type PageEntry struct {
	Item       Item
	DistanceKm float64
}

// Page is one window of a sorted result set. Number is 1-indexed.
type Page struct {
	Items      []PageEntry
	TotalCount int
	Number     int
	Size       int
}

// Result is one ranked search hit or recommendation.
type Result struct {
	Item           Item
	RelevanceScore float64
	DistanceKm     float64
}

// SearchResult is the reply of a free-text search, best match first.
type SearchResult struct {
	InterpretedIntent string
	Results           []Result
}

// DiscoverQuery selects a discovery page. Zero Page and PageSize use 1 and 20.
type DiscoverQuery struct {
	Near     *Position
	RadiusKm float64
	Category string
	SortBy   SortBy
	Page     int
	PageSize int
}

// SearchQuery is a free-text search. RadiusKm, Category and the price bounds
// are accepted for compatibility; results are not filtered by them.
type SearchQuery struct {
	Text     string
	Near     *Position
	RadiusKm *float64
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// RecommendQuery asks for personalized suggestions. UserID is optional.
type RecommendQuery struct {
	UserID      string
	Near        *Position
	Interests   []string
	TimeContext string
}

// BrowseQuery pages the active items of one kind. Price bounds apply to listings only.
type BrowseQuery struct {
	Near     *Position
	RadiusKm float64
	Category string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	PageSize int
}

func (q *DiscoverQuery) pageOrDefault() (int, int) { return pageDefaults(q.Page, q.PageSize) }

func (q *BrowseQuery) pageOrDefault() (int, int) { return pageDefaults(q.Page, q.PageSize) }

func pageDefaults(number, size int) (int, int) {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = page.DefaultPageSize
	}
	return number, size
}

func (p *Position) toDomain() *geo.Coordinate {
	if p == nil {
		return nil
	}
	return &geo.Coordinate{Latitude: p.Lat, Longitude: p.Lon}
}

func positionFromDomain(c *geo.Coordinate) *Position {
	if c == nil {
		return nil
	}
	return &Position{Lat: c.Latitude, Lon: c.Longitude}
}

func itemFromDomain(it *content.Item) Item {
	return Item{
		Kind:        Kind(it.Kind),
		ID:          it.ID.String(),
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category,
		Tags:        it.Tags,
		ImageURL:    it.ImageURL,
		Position:    positionFromDomain(it.Position),
		Price:       it.Price,
		LikeCount:   it.LikeCount,
		SaveCount:   it.SaveCount,
		CreatedAt:   it.CreatedAt,
		OwnerName:   it.OwnerName,
	}
}

func pageFromDomain(p page.Page) Page {
	items := make([]PageEntry, len(p.Items))
	for i := range p.Items {
		items[i] = PageEntry{Item: itemFromDomain(&p.Items[i].Item), DistanceKm: p.Items[i].DistanceKm}
	}
	return Page{Items: items, TotalCount: p.TotalCount, Number: p.Number, Size: p.Size}
}

func resultsFromDomain(rs []ranking.Result) []Result {
	out := make([]Result, len(rs))
	for i := range rs {
		out[i] = Result{
			Item:           itemFromDomain(&rs[i].Item),
			RelevanceScore: rs[i].RelevanceScore,
			DistanceKm:     rs[i].DistanceKm,
		}
	}
	return out
}
