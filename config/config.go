package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
	League        LeagueConfig        `yaml:"league"`
	Queue         QueueConfig         `yaml:"queue"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// NATSConfig holds the optional live feed relay configuration. An empty URL disables the relay.
type NATSConfig struct {
	URL      string `yaml:"url"`
	NKeySeed string `yaml:"nkey_seed"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// LeagueConfig holds the playing rules applied to new games.
type LeagueConfig struct {
	RegulationInnings int    `yaml:"regulation_innings"`
	MercyRuleRuns     int    `yaml:"mercy_rule_runs"`
	MercyRuleInning   int    `yaml:"mercy_rule_inning"`
	Timezone          string `yaml:"timezone"`
}

// QueueConfig holds configuration for the River job queue.
type QueueConfig struct {
	Enabled          bool          `yaml:"enabled"`
	ReminderLeadTime time.Duration `yaml:"reminder_lead_time"`
}

const (
	defaultHTTPAddress       = ":8080"
	defaultRegulationInnings = 7
	defaultMercyRuleRuns     = 10
	defaultMercyRuleInning   = 5
	defaultTimezone          = "America/Chicago"
	defaultReminderLeadTime  = 24 * time.Hour
	defaultJWTTTL            = 24 * time.Hour
	defaultRateLimitRPS      = 10
	defaultRateLimitBurst    = 30
)

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	// Queue defaults to on when configured purely from the environment.
	cfg.Queue.Enabled = true

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS value: %v", err)
		}
		cfg.HTTP.RateLimitRPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST value: %v", err)
		}
		cfg.HTTP.RateLimitBurst = n
	}
	if v := os.Getenv("TRUST_PROXY_HEADERS"); v != "" {
		cfg.HTTP.TrustProxyHeaders = v == "true"
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_DEFAULT_TTL value: %v", err)
		}
		cfg.JWT.DefaultTTL = d
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.NATS.NKeySeed = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("REGULATION_INNINGS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REGULATION_INNINGS value: %v", err)
		}
		cfg.League.RegulationInnings = n
	}
	if v := os.Getenv("MERCY_RULE_RUNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MERCY_RULE_RUNS value: %v", err)
		}
		cfg.League.MercyRuleRuns = n
	}
	if v := os.Getenv("MERCY_RULE_INNING"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MERCY_RULE_INNING value: %v", err)
		}
		cfg.League.MercyRuleInning = n
	}
	if v := os.Getenv("LEAGUE_TIMEZONE"); v != "" {
		cfg.League.Timezone = v
	}
	if v := os.Getenv("QUEUE_ENABLED"); v != "" {
		cfg.Queue.Enabled = v == "true"
	}
	if v := os.Getenv("REMINDER_LEAD_TIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REMINDER_LEAD_TIME value: %v", err)
		}
		cfg.Queue.ReminderLeadTime = d
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = defaultHTTPAddress
	}
	if cfg.HTTP.RateLimitRPS == 0 {
		cfg.HTTP.RateLimitRPS = defaultRateLimitRPS
	}
	if cfg.HTTP.RateLimitBurst == 0 {
		cfg.HTTP.RateLimitBurst = defaultRateLimitBurst
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = defaultJWTTTL
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "dugout"
	}
	if cfg.League.RegulationInnings == 0 {
		cfg.League.RegulationInnings = defaultRegulationInnings
	}
	if cfg.League.MercyRuleRuns == 0 {
		cfg.League.MercyRuleRuns = defaultMercyRuleRuns
	}
	if cfg.League.MercyRuleInning == 0 {
		cfg.League.MercyRuleInning = defaultMercyRuleInning
	}
	if cfg.League.Timezone == "" {
		cfg.League.Timezone = defaultTimezone
	}
	if cfg.Queue.ReminderLeadTime == 0 {
		cfg.Queue.ReminderLeadTime = defaultReminderLeadTime
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres dsn is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if c.League.RegulationInnings < 1 {
		return fmt.Errorf("regulation innings must be positive, got %d", c.League.RegulationInnings)
	}
	if c.League.MercyRuleInning > c.League.RegulationInnings {
		return fmt.Errorf("mercy rule inning %d is after regulation (%d)", c.League.MercyRuleInning, c.League.RegulationInnings)
	}
	if _, err := time.LoadLocation(c.League.Timezone); err != nil {
		return fmt.Errorf("invalid league timezone %q: %w", c.League.Timezone, err)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
