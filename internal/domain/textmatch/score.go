// Package textmatch scores free-text queries against content fields using
// substring hits and edit-distance similarity.
package textmatch

import "strings"

// Per-term weights. A single term may collect several of them.
const (
	TitleWeight       = 1.0
	DescriptionWeight = 0.5
	CategoryWeight    = 0.7
	TagWeight         = 0.6
	FuzzyTitleWeight  = 0.4

	// FuzzyThreshold is the title similarity a term must exceed to earn FuzzyTitleWeight.
	FuzzyThreshold = 0.7
	// CandidateThreshold is the score an item must exceed to be a match.
	CandidateThreshold = 0.3
)

// Fields is the text of one item as seen by the scorer.
type Fields struct {
	Title       string
	Description string
	Category    string
	Tags        []string
}

// Tokenize splits a query on whitespace, lowercases it and drops empty tokens.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Score returns the normalized relevance of f for the given lowercase terms, in [0,1].
func Score(terms []string, f Fields) float64 {
	if len(terms) == 0 {
		return 0
	}

	title := strings.ToLower(f.Title)
	desc := strings.ToLower(f.Description)
	category := strings.ToLower(f.Category)
	tags := make([]string, len(f.Tags))
	for i, t := range f.Tags {
		tags[i] = strings.ToLower(t)
	}

	var sum float64
	for _, term := range terms {
		if strings.Contains(title, term) {
			sum += TitleWeight
		}
		if strings.Contains(desc, term) {
			sum += DescriptionWeight
		}
		if strings.Contains(category, term) {
			sum += CategoryWeight
		}
		if anyContains(tags, term) {
			sum += TagWeight
		}
		if title != "" && Similarity(term, title) > FuzzyThreshold {
			sum += FuzzyTitleWeight
		}
	}

	return clamp01(sum / float64(len(terms)))
}

// IsCandidate reports whether score clears the match threshold (exclusive).
func IsCandidate(score float64) bool {
	return score > CandidateThreshold
}

func anyContains(values []string, term string) bool {
	for _, v := range values {
		if strings.Contains(v, term) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
