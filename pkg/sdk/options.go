package nexa

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	dsn string
	db  *sql.DB

	suggester     Suggester
	oracleTimeout time.Duration
	queryTimeout  time.Duration
	now           func() time.Time

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPostgres opens a connection pool to the catalog database. The client owns
// the pool and closes it on Close.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dsn = dsn
	})
}

// WithDB reuses an existing pool. Close leaves it open.
func WithDB(db *sql.DB) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = db
	})
}

// WithSuggester sets the recommendation generator.
// Without it recommendations always return the fallback item.
func WithSuggester(s Suggester) Option {
	return optionFunc(func(c *clientConfig) {
		c.suggester = s
	})
}

// WithOracleTimeout bounds a single Suggest call. Default: 30s.
func WithOracleTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.oracleTimeout = d
	})
}

// WithQueryTimeout bounds each catalog query. Default: 5s.
func WithQueryTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.queryTimeout = d
	})
}

// WithClock overrides the time source used for event and offer expiry.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *clientConfig) {
		c.now = now
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
