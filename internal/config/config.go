package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the nexa API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Oracle    OracleConfig    `yaml:"oracle"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	CORS      CORSConfig      `yaml:"cors"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int `yaml:"max_body_bytes"`
	// OracleRateLimitPerMin caps recommend and draft calls per client IP. Negative disables.
	OracleRateLimitPerMin int `yaml:"oracle_rate_limit_per_min"`
}

// PostgresConfig holds catalog database settings.
type PostgresConfig struct {
	DSN                string `yaml:"dsn"`
	MaxOpenConns       int    `yaml:"max_open_conns"`
	MaxIdleConns       int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `yaml:"conn_max_lifetime_sec"`
	QueryTimeoutSec    int    `yaml:"query_timeout_sec"`
	ReadinessTimeout   int    `yaml:"readiness_timeout_sec"`
}

// RedisConfig holds suggestion cache settings. The cache is optional.
type RedisConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	SuggestionTTLSec int      `yaml:"suggestion_ttl_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
}

// OracleConfig holds generative oracle settings.
type OracleConfig struct {
	APIKey     string        `yaml:"api_key"`
	BaseURL    string        `yaml:"base_url"`
	Model      string        `yaml:"model"`
	TimeoutSec int           `yaml:"timeout_sec"`
	MaxTokens  int           `yaml:"max_tokens"`
	Breaker    BreakerConfig `yaml:"breaker"`
}

// Enabled reports whether an API key is configured.
func (o OracleConfig) Enabled() bool {
	return o.APIKey != ""
}

// BreakerConfig holds circuit breaker settings around the oracle.
type BreakerConfig struct {
	MaxRequests         uint32 `yaml:"max_requests"`          // allowed in half-open state
	IntervalSec         int    `yaml:"interval_sec"`          // closed-state counter reset
	OpenTimeoutSec      int    `yaml:"open_timeout_sec"`      // open -> half-open
	ConsecutiveFailures uint32 `yaml:"consecutive_failures"` // trips the breaker
}

// DiscoveryConfig holds pagination and radius defaults.
type DiscoveryConfig struct {
	DefaultPageSize int     `yaml:"default_page_size"`
	MaxPageSize     int     `yaml:"max_page_size"`
	DefaultRadiusKm float64 `yaml:"default_radius_km"`
}

// CORSConfig holds allowed frontend origins.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60 // recommendation and image calls wait on the oracle
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 10 << 20
	}
	if c.HTTP.OracleRateLimitPerMin == 0 {
		c.HTTP.OracleRateLimitPerMin = 30
	}
	if c.Postgres.MaxOpenConns <= 0 {
		c.Postgres.MaxOpenConns = 20
	}
	if c.Postgres.MaxIdleConns <= 0 {
		c.Postgres.MaxIdleConns = min(5, c.Postgres.MaxOpenConns)
	}
	if c.Postgres.ConnMaxLifetimeSec <= 0 {
		c.Postgres.ConnMaxLifetimeSec = 300
	}
	if c.Postgres.QueryTimeoutSec <= 0 {
		c.Postgres.QueryTimeoutSec = 5
	}
	if c.Postgres.ReadinessTimeout <= 0 {
		c.Postgres.ReadinessTimeout = 30
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.Redis.SuggestionTTLSec <= 0 {
		c.Redis.SuggestionTTLSec = 600
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "nexa:"
	}
	if c.Oracle.Model == "" {
		c.Oracle.Model = "gpt-4o"
	}
	if c.Oracle.TimeoutSec <= 0 {
		c.Oracle.TimeoutSec = 30
	}
	if c.Oracle.MaxTokens <= 0 {
		c.Oracle.MaxTokens = 1000
	}
	if c.Oracle.Breaker.MaxRequests == 0 {
		c.Oracle.Breaker.MaxRequests = 1
	}
	if c.Oracle.Breaker.IntervalSec <= 0 {
		c.Oracle.Breaker.IntervalSec = 60
	}
	if c.Oracle.Breaker.OpenTimeoutSec <= 0 {
		c.Oracle.Breaker.OpenTimeoutSec = 30
	}
	if c.Oracle.Breaker.ConsecutiveFailures == 0 {
		c.Oracle.Breaker.ConsecutiveFailures = 5
	}
	if c.Discovery.DefaultPageSize <= 0 {
		c.Discovery.DefaultPageSize = 20
	}
	if c.Discovery.MaxPageSize <= 0 {
		c.Discovery.MaxPageSize = 100
	}
	if c.Discovery.DefaultRadiusKm <= 0 {
		c.Discovery.DefaultRadiusKm = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required")
	}
	if c.Postgres.MaxIdleConns > c.Postgres.MaxOpenConns {
		return fmt.Errorf("postgres.max_idle_conns (%d) must not exceed max_open_conns (%d)",
			c.Postgres.MaxIdleConns, c.Postgres.MaxOpenConns)
	}
	if c.Redis.Enabled && len(c.Redis.Addrs) == 0 {
		return fmt.Errorf("redis.addrs is required when redis is enabled")
	}
	if c.Discovery.DefaultPageSize > c.Discovery.MaxPageSize {
		return fmt.Errorf("discovery.default_page_size (%d) must not exceed max_page_size (%d)",
			c.Discovery.DefaultPageSize, c.Discovery.MaxPageSize)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
