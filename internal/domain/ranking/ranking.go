// Package ranking holds ranked result shapes shared by search and recommendations.
package ranking

import (
	"sort"

	"github.com/nexa-app/nexa/internal/domain/content"
)

// MaxSearchResults caps every ranked search response.
const MaxSearchResults = 20

// Result is one scored item. RelevanceScore is in [0,1]; DistanceKm is 0
// when either side of the distance lacks coordinates.
type Result struct {
	Item           content.Item
	RelevanceScore float64
	DistanceKm     float64
}

// NewResult clamps score into [0,1] and distance to be non-negative.
func NewResult(item content.Item, score, distanceKm float64) Result {
	switch {
	case score < 0:
		score = 0
	case score > 1:
		score = 1
	}
	if distanceKm < 0 {
		distanceKm = 0
	}
	return Result{Item: item, RelevanceScore: score, DistanceKm: distanceKm}
}

// SearchOutcome is the reply of a free-text search.
type SearchOutcome struct {
	InterpretedIntent string
	Results           []Result
}

// SortByRelevance orders results by score descending, then distance ascending.
// The sort is stable so equal results keep their input order.
func SortByRelevance(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		return results[i].DistanceKm < results[j].DistanceKm
	})
}

// Top truncates results to at most n entries.
func Top(results []Result, n int) []Result {
	if len(results) > n {
		return results[:n]
	}
	return results
}
