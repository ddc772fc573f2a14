package chi

import (
	"time"

	"github.com/google/uuid"

	"github.com/nexa-app/nexa/internal/domain/content"
	"github.com/nexa-app/nexa/internal/domain/draft"
	"github.com/nexa-app/nexa/internal/domain/page"
	"github.com/nexa-app/nexa/internal/domain/ranking"
	healthuc "github.com/nexa-app/nexa/internal/usecase/health"
)

// ErrorCode is the machine-readable part of an error reply.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeStorageFailure   ErrorCode = "storage_failure"
	ErrorCodeOracleFailure    ErrorCode = "oracle_failure"
	ErrorCodeRateLimited      ErrorCode = "rate_limited"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DiscoveryItem is one entry of a discovery or browse page.
type DiscoveryItem struct {
	ContentType  content.Kind `json:"contentType"`
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ImageURL     *string      `json:"imageUrl"`
	Category     string       `json:"category"`
	Latitude     *float64     `json:"latitude"`
	Longitude    *float64     `json:"longitude"`
	DistanceKm   float64      `json:"distanceKm"`
	Price        *float64     `json:"price"`
	LikeCount    int          `json:"likeCount"`
	SaveCount    int          `json:"saveCount"`
	CreatedAt    time.Time    `json:"createdAt"`
	BusinessName *string      `json:"businessName"`
}

// PageResponse is a paginated list of discovery items.
type PageResponse struct {
	Items      []DiscoveryItem `json:"items"`
	TotalCount int             `json:"totalCount"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
}

// SearchRequest is the body of POST /api/ai/search.
type SearchRequest struct {
	Query     string   `json:"query" validate:"required,max=512"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	RadiusKm  *float64 `json:"radiusKm" validate:"omitempty,gte=0"`
	Category  string   `json:"category" validate:"max=100"`
	MinPrice  *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice  *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
}

// RecommendedItem is one ranked search hit or recommendation.
type RecommendedItem struct {
	ContentType    content.Kind `json:"contentType"`
	ContentID      uuid.UUID    `json:"contentId"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	ImageURL       *string      `json:"imageUrl"`
	Category       string       `json:"category"`
	RelevanceScore float64      `json:"relevanceScore"`
	DistanceKm     float64      `json:"distanceKm"`
}

// SearchResponse is the reply of POST /api/ai/search.
type SearchResponse struct {
	InterpretedIntent string            `json:"interpretedIntent"`
	Results           []RecommendedItem `json:"results"`
}

// RecommendRequest is the body of POST /api/ai/recommend.
type RecommendRequest struct {
	UserID      uuid.UUID `json:"userId"`
	Latitude    *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Interests   []string  `json:"interests" validate:"max=50,dive,max=100"`
	TimeContext string    `json:"timeContext" validate:"max=100"`
}

// RecommendResponse is the reply of POST /api/ai/recommend.
type RecommendResponse struct {
	Items []RecommendedItem `json:"items"`
}

// ListingFromImageRequest is the body of POST /api/ai/listing-from-image.
type ListingFromImageRequest struct {
	ImageBase64 string `json:"imageBase64" validate:"required"`
}

// ListingDraftResponse is the proposed listing returned for a photo.
type ListingDraftResponse struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Tags              []string `json:"tags"`
	PriceMin          *float64 `json:"priceMin"`
	PriceMax          *float64 `json:"priceMax"`
	ConfidenceScore   float64  `json:"confidenceScore"`
	InterpretedIntent string   `json:"interpretedIntent"`
}

// HealthResponse is the reply of GET /health.
type HealthResponse struct {
	Status healthuc.Status                  `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

func pageToResponse(p page.Page) PageResponse {
	items := make([]DiscoveryItem, len(p.Items))
	for i, e := range p.Items {
		items[i] = entryToItem(e)
	}
	return PageResponse{
		Items:      items,
		TotalCount: p.TotalCount,
		Page:       p.Number,
		PageSize:   p.Size,
	}
}

func entryToItem(e page.Entry) DiscoveryItem {
	it := e.Item
	out := DiscoveryItem{
		ContentType:  it.Kind,
		ID:           it.ID,
		Title:        it.Title,
		Description:  it.Description,
		ImageURL:     optString(it.ImageURL),
		Category:     it.Category,
		DistanceKm:   e.DistanceKm,
		Price:        it.Price,
		LikeCount:    it.LikeCount,
		SaveCount:    it.SaveCount,
		CreatedAt:    it.CreatedAt,
		BusinessName: optString(it.OwnerName),
	}
	if it.Position != nil {
		lat, lon := it.Position.Latitude, it.Position.Longitude
		out.Latitude = &lat
		out.Longitude = &lon
	}
	return out
}

func resultsToItems(results []ranking.Result) []RecommendedItem {
	items := make([]RecommendedItem, len(results))
	for i, r := range results {
		items[i] = RecommendedItem{
			ContentType:    r.Item.Kind,
			ContentID:      r.Item.ID,
			Title:          r.Item.Title,
			Description:    r.Item.Description,
			ImageURL:       optString(r.Item.ImageURL),
			Category:       r.Item.Category,
			RelevanceScore: r.RelevanceScore,
			DistanceKm:     r.DistanceKm,
		}
	}
	return items
}

func draftToResponse(d draft.Draft) ListingDraftResponse {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return ListingDraftResponse{
		Title:             d.Title,
		Description:       d.Description,
		Category:          d.Category,
		Tags:              tags,
		PriceMin:          d.PriceMin,
		PriceMax:          d.PriceMax,
		ConfidenceScore:   d.ConfidenceScore,
		InterpretedIntent: d.InterpretedIntent,
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
