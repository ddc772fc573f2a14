package chi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/geo"
)

// listParams are the query parameters shared by discovery and browse.
type listParams struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
	Category  *string
	SortBy    *string
	MinPrice  *float64
	MaxPrice  *float64
	Page      *int
	PageSize  *int
}

// bindListParams decodes the optional list parameters from q.
func bindListParams(q url.Values) (listParams, error) {
	var p listParams
	binds := []struct {
		name string
		dest any
	}{
		{"latitude", &p.Latitude},
		{"longitude", &p.Longitude},
		{"radiusKm", &p.RadiusKm},
		{"category", &p.Category},
		{"sortBy", &p.SortBy},
		{"minPrice", &p.MinPrice},
		{"maxPrice", &p.MaxPrice},
		{"page", &p.Page},
		{"pageSize", &p.PageSize},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return listParams{}, fmt.Errorf("%w: invalid query parameter %q", domain.ErrInvalidInput, b.name)
		}
	}
	return p, nil
}

func (p *listParams) category() string {
	if p.Category == nil {
		return ""
	}
	return strings.TrimSpace(*p.Category)
}

func (p *listParams) sortBy() string {
	if p.SortBy == nil {
		return ""
	}
	return *p.SortBy
}

func (p *listParams) radiusKm(def float64) float64 {
	if p.RadiusKm == nil || *p.RadiusKm <= 0 {
		return def
	}
	return *p.RadiusKm
}

func (p *listParams) pageNumber() int {
	if p.Page == nil {
		return 1
	}
	return *p.Page
}

func (p *listParams) pageSize(def int) int {
	if p.PageSize == nil {
		return def
	}
	return *p.PageSize
}

// position turns an optional latitude/longitude pair into a coordinate.
// A missing half means the caller sent no position.
func position(lat, lon *float64) (*geo.Coordinate, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	c := geo.Coordinate{Latitude: *lat, Longitude: *lon}
	if !geo.ValidCoordinate(c) {
		return nil, fmt.Errorf("%w: coordinate out of range", domain.ErrInvalidInput)
	}
	return &c, nil
}

// nonZeroPosition is position for discovery, search and recommend, where
// clients send a zero latitude or longitude when they have no fix.
func nonZeroPosition(lat, lon *float64) (*geo.Coordinate, error) {
	if (lat != nil && *lat == 0) || (lon != nil && *lon == 0) {
		return nil, nil
	}
	return position(lat, lon)
}
