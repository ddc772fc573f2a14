// Package content defines the unified read-only projection of listings,
// events and offers used by discovery, search and browse.
package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexa-app/nexa/internal/domain/geo"
)

// Kind tags the marketable entity an Item was projected from.
type Kind string

// Content kinds.
const (
	Listing Kind = "Listing"
	Event   Kind = "Event"
	Offer   Kind = "Offer"
)

// Kinds lists every content kind in merge order.
var Kinds = []Kind{Listing, Event, Offer}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Listing || k == Event || k == Offer
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

// Item is one listing, event or offer as seen by the ranking core.
// It lives for a single request and is never persisted.
type Item struct {
	Kind        Kind
	ID          uuid.UUID
	Title       string
	Description string
	Category    string
	Tags        []string
	ImageURL    string
	Position    *geo.Coordinate
	Price       *float64
	LikeCount   int
	SaveCount   int
	CreatedAt   time.Time
	OwnerName   string
}

// Popularity is the engagement total used by the "popular" sort.
func (i *Item) Popularity() int {
	return i.LikeCount + i.SaveCount
}

// HasPosition reports whether the item carries coordinates.
func (i *Item) HasPosition() bool {
	return i.Position != nil
}

// Batch is the active items of one kind, in kind-native order.
type Batch struct {
	Kind  Kind
	Items []Item
}
