package infra

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"tourney"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"tourney"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"tourney"`
	PGMaxConns  int32  `env:"PG_MAX_CONNS" envDefault:"16"`
	PGMinConns  int32  `env:"PG_MIN_CONNS" envDefault:"2"`

	// JWT
	JWTSecret       string `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTPlayerExpiry string `env:"JWT_PLAYER_EXPIRY" envDefault:"24h"`
	JWTAdminExpiry  string `env:"JWT_ADMIN_EXPIRY" envDefault:"8h"`

	// Server
	APIPort int `env:"API_PORT" envDefault:"3200"`

	// Kafka
	KafkaBrokers   string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled   bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	OutcomeTopic   string `env:"OUTCOME_TOPIC" envDefault:"tourney.game.outcomes"`
	OutcomeGroupID string `env:"OUTCOME_GROUP_ID" envDefault:"tourney-settlement"`

	// Tournament economics
	StartingGrant             int64  `env:"STARTING_GRANT" envDefault:"1000"`
	PerSubscriberContribution int64  `env:"PER_SUBSCRIBER_CONTRIBUTION" envDefault:"100"`
	PeriodDays                int    `env:"PERIOD_DAYS" envDefault:"7"`
	RolloverCron              string `env:"ROLLOVER_CRON" envDefault:"0 0 * * 1"`
	PushPolicy                string `env:"PUSH_POLICY" envDefault:"loss"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure or inconsistent configuration.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass the JWT checks (local dev only).
func (c *Config) Validate() error {
	if c.PushPolicy != "loss" && c.PushPolicy != "refund" {
		return fmt.Errorf("PUSH_POLICY must be loss or refund, got %q", c.PushPolicy)
	}
	if c.PerSubscriberContribution <= 0 {
		return fmt.Errorf("PER_SUBSCRIBER_CONTRIBUTION must be positive")
	}
	if c.StartingGrant <= 0 {
		return fmt.Errorf("STARTING_GRANT must be positive")
	}
	if c.PGMaxConns < 1 || c.PGMinConns < 0 || c.PGMinConns > c.PGMaxConns {
		return fmt.Errorf("pool sizing misconfigured: PG_MAX_CONNS=%d PG_MIN_CONNS=%d", c.PGMaxConns, c.PGMinConns)
	}
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.JWTSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET is set to the insecure default; set a strong secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.JWTSecret))
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
