package health

import "context"

// Pinger checks availability of a backing store (Postgres, Redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

// OracleChecker checks generative oracle availability.
type OracleChecker interface {
	HealthCheck(ctx context.Context) error
}
