// Package recommend holds the prompt context sent to the generative oracle
// and the suggestions it returns.
package recommend

import (
	"fmt"
	"strings"

	"github.com/nexa-app/nexa/internal/domain/geo"
)

// DefaultTimeContext is used when the caller gives no time context.
const DefaultTimeContext = "general"

// Prompt is the context a recommendation is generated for.
type Prompt struct {
	Position    *geo.Coordinate
	Interests   []string
	TimeContext string
}

// NewPrompt normalizes interests (trimmed, empties dropped) and defaults the time context.
func NewPrompt(position *geo.Coordinate, interests []string, timeContext string) Prompt {
	cleaned := make([]string, 0, len(interests))
	for _, in := range interests {
		if s := strings.TrimSpace(in); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	timeContext = strings.TrimSpace(timeContext)
	if timeContext == "" {
		timeContext = DefaultTimeContext
	}
	return Prompt{Position: position, Interests: cleaned, TimeContext: timeContext}
}

// Location renders the position as "lat, lon"; an absent position renders as "0, 0".
func (p Prompt) Location() string {
	if p.Position == nil {
		return "0, 0"
	}
	return fmt.Sprintf("%g, %g", p.Position.Latitude, p.Position.Longitude)
}

// Key is a canonical text form of the prompt, stable across calls with equal input.
func (p Prompt) Key() string {
	return p.Location() + "|" + strings.Join(p.Interests, ",") + "|" + p.TimeContext
}

// Suggestion is one candidate returned by the oracle. It does not reference a stored entity.
type Suggestion struct {
	ContentType    string  `json:"contentType"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	RelevanceScore float64 `json:"relevanceScore"`
}
