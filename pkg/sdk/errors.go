package nexa

import "github.com/nexa-app/nexa/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound     = domain.ErrNotFound
	ErrInvalidInput = domain.ErrInvalidInput
	ErrStorage      = domain.ErrStorage
	ErrOracle       = domain.ErrOracle
)
