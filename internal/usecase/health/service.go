package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is down; recommendations
	// fall back and the cache is bypassed.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names as reported in Report.Checks.
const (
	ComponentDatabase = "database"
	ComponentCache    = "cache"
	ComponentOracle   = "oracle"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db     Pinger
	cache  Pinger
	oracle OracleChecker
}

// New creates a Service. cache and oracle can be nil.
func New(db Pinger, cache Pinger, oracle OracleChecker) *Service {
	return &Service{db: db, cache: cache, oracle: oracle}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	log := logger.FromContext(ctx)

	record := func(name string, err error) {
		if err != nil {
			log.Warn("Health check failed", zap.String("component", name), zap.Error(err))
			checks[name] = CheckError
			return
		}
		checks[name] = CheckOK
	}

	record(ComponentDatabase, s.db.Ping(ctx))
	if s.cache != nil {
		record(ComponentCache, s.cache.Ping(ctx))
	}
	if s.oracle != nil {
		record(ComponentOracle, s.oracle.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks[ComponentDatabase] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
