// Package catalog holds the raw persisted records the storage layer returns.
// Only the columns the discovery core reads are modeled.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus is the lifecycle state of a listing.
type ListingStatus string

// Listing statuses.
const (
	ListingActive  ListingStatus = "Active"
	ListingSold    ListingStatus = "Sold"
	ListingExpired ListingStatus = "Expired"
	ListingDraft   ListingStatus = "Draft"
)

// Listing is a product or service offered by a seller or business.
type Listing struct {
	ID           uuid.UUID
	Title        string
	Description  *string
	Category     string
	Tags         []string
	ImageURLs    []string
	Price        *float64
	PriceMin     *float64
	PriceMax     *float64
	Status       ListingStatus
	Latitude     *float64
	Longitude    *float64
	LikeCount    int
	SaveCount    int
	CreatedAt    time.Time
	BusinessName *string
}

// Event is a dated happening hosted by a business. A nil EndDate means open-ended.
type Event struct {
	ID           uuid.UUID
	Title        string
	Description  *string
	Category     string
	Tags         []string
	ImageURL     *string
	Latitude     *float64
	Longitude    *float64
	StartDate    time.Time
	EndDate      *time.Time
	Price        *float64
	LikeCount    int
	SaveCount    int
	CreatedAt    time.Time
	BusinessName *string
}

// Offer is a time-boxed discount published by a business.
type Offer struct {
	ID              uuid.UUID
	Title           string
	Description     *string
	Category        string
	Tags            []string
	ImageURL        *string
	OriginalPrice   *float64
	DiscountedPrice *float64
	Latitude        *float64
	Longitude       *float64
	StartDate       time.Time
	EndDate         time.Time
	LikeCount       int
	SaveCount       int
	CreatedAt       time.Time
	BusinessName    *string
}

// IsActive reports whether the listing is for sale.
func (l *Listing) IsActive() bool {
	return l.Status == ListingActive
}

// IsActive reports whether the event has not ended at now.
func (e *Event) IsActive(now time.Time) bool {
	return e.EndDate == nil || e.EndDate.After(now)
}

// IsActive reports whether the offer ends strictly after now.
func (o *Offer) IsActive(now time.Time) bool {
	return o.EndDate.After(now)
}
