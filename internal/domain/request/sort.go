package request

import "strings"

// SortBy is the ordering key of a discovery page.
type SortBy string

// Sort keys.
const (
	SortRecent   SortBy = "recent"
	SortPopular  SortBy = "popular"
	SortDistance SortBy = "distance"
)

// ParseSort maps a caller-supplied key onto a SortBy, case-insensitively.
// Unknown and empty keys fall back to SortRecent.
func ParseSort(s string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortPopular:
		return SortPopular
	case SortDistance:
		return SortDistance
	default:
		return SortRecent
	}
}
