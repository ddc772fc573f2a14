// Package draft proposes a listing from a product photo.
package draft

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/draft"
	"github.com/nexa-app/nexa/internal/logger"
	"github.com/nexa-app/nexa/internal/metrics"
)

const operation = "listing_draft"

// DefaultTimeout bounds a single vision call.
const DefaultTimeout = 30 * time.Second

// Service builds listing drafts.
type Service struct {
	oracle  Describer
	timeout time.Duration
}

// New creates a draft service. timeout <= 0 uses DefaultTimeout.
func New(oracle Describer, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{oracle: oracle, timeout: timeout}
}

// FromImage describes the photo. An empty image is rejected; any oracle
// failure returns Fallback instead of an error.
func (s *Service) FromImage(ctx context.Context, imageBase64 string) (draft.Draft, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return draft.Draft{}, fmt.Errorf("%w: image is required", domain.ErrInvalidInput)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	d, err := s.oracle.Describe(callCtx, imageBase64)
	if err != nil {
		logger.FromContext(ctx).Error("Image analysis failed, serving fallback draft", zap.Error(err))
		metrics.OracleFallbacksTotal.WithLabelValues(operation).Inc()
		return Fallback(), nil
	}
	return d.Normalize(), nil
}

// Fallback is the draft returned when the photo could not be analyzed.
func Fallback() draft.Draft {
	lo, hi := 10.0, 100.0
	return draft.Draft{
		Title:           "Product",
		Description:     "Unable to analyze image. Please add details manually.",
		Category:        draft.OtherCategory,
		Tags:            []string{"product"},
		PriceMin:        &lo,
		PriceMax:        &hi,
		ConfidenceScore: 0,
	}
}
