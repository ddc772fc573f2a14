// Package domain holds sentinel errors shared across layers.
package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorage signals a storage collaborator failure. Fatal for the request.
	ErrStorage = errors.New("storage failure")
	// ErrOracle signals a generative oracle failure (error, timeout, open breaker).
	// Callers recover from it with a fallback value.
	ErrOracle = errors.New("oracle failure")
	// ErrMalformedResponse signals an oracle reply that could not be parsed.
	ErrMalformedResponse = errors.New("malformed oracle response")
)
