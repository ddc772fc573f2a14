package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Postgres: PostgresConfig{DSN: "postgres://localhost/nexa"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Oracle.Model != "gpt-4o" {
		t.Errorf("expected default model gpt-4o, got %q", cfg.Oracle.Model)
	}
	if cfg.Discovery.DefaultPageSize != 20 || cfg.Discovery.MaxPageSize != 100 {
		t.Errorf("unexpected page sizes %d/%d", cfg.Discovery.DefaultPageSize, cfg.Discovery.MaxPageSize)
	}
	if cfg.Discovery.DefaultRadiusKm != 10 {
		t.Errorf("expected default radius 10, got %v", cfg.Discovery.DefaultRadiusKm)
	}
	if cfg.Postgres.MaxIdleConns != 5 || cfg.Postgres.MaxOpenConns != 20 {
		t.Errorf("unexpected pool sizes %d/%d", cfg.Postgres.MaxIdleConns, cfg.Postgres.MaxOpenConns)
	}
	if cfg.Oracle.Breaker.ConsecutiveFailures != 5 {
		t.Errorf("expected breaker threshold 5, got %d", cfg.Oracle.Breaker.ConsecutiveFailures)
	}
	if cfg.Postgres.ReadinessTimeout != 30 {
		t.Errorf("expected postgres readiness 30s, got %d", cfg.Postgres.ReadinessTimeout)
	}
	if cfg.HTTP.OracleRateLimitPerMin != 30 {
		t.Errorf("expected oracle rate limit 30, got %d", cfg.HTTP.OracleRateLimitPerMin)
	}
}

func TestApplyDefaults_NegativeRateLimitKept(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{OracleRateLimitPerMin: -1}}
	cfg.ApplyDefaults()

	if cfg.HTTP.OracleRateLimitPerMin != -1 {
		t.Errorf("negative rate limit must stay disabled, got %d", cfg.HTTP.OracleRateLimitPerMin)
	}
}

func TestApplyDefaults_IdleFollowsSmallPool(t *testing.T) {
	cfg := Config{Postgres: PostgresConfig{MaxOpenConns: 2}}
	cfg.ApplyDefaults()
	if cfg.Postgres.MaxIdleConns != 2 {
		t.Errorf("expected idle conns capped at 2, got %d", cfg.Postgres.MaxIdleConns)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }, true},
		{"missing dsn", func(c *Config) { c.Postgres.DSN = "" }, true},
		{"idle above open", func(c *Config) { c.Postgres.MaxIdleConns = 50 }, true},
		{"redis without addrs", func(c *Config) { c.Redis.Enabled = true }, true},
		{"redis with addrs", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.Addrs = []string{"localhost:6379"}
		}, false},
		{"page size above max", func(c *Config) { c.Discovery.DefaultPageSize = 500 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOracleEnabled(t *testing.T) {
	if (OracleConfig{}).Enabled() {
		t.Error("oracle without key must be disabled")
	}
	if !(OracleConfig{APIKey: "sk-test"}).Enabled() {
		t.Error("oracle with key must be enabled")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("NEXA_TEST_DSN", "postgres://db/nexa")

	got := string(expandEnvVars([]byte("dsn: ${NEXA_TEST_DSN}\nport: ${NEXA_TEST_UNSET:-8080}\nkey: ${NEXA_TEST_UNSET}")))
	want := "dsn: postgres://db/nexa\nport: 8080\nkey: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${NEXA_TEST_PORT:-9090}
postgres:
  dsn: postgres://localhost/nexa
cors:
  allowed_origins: ["http://localhost:3000"]
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 {
		t.Errorf("expected one origin, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Oracle.Model != "gpt-4o" {
		t.Errorf("defaults not applied: model %q", cfg.Oracle.Model)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "broken.yaml"), []byte("http:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	if _, err := Load("broken"); err == nil {
		t.Fatal("expected error for missing postgres dsn")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}
