package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=3001"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Accounts AccountsConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type AccountsConfig struct {
	BcryptCost    int           `env:"BCRYPT_COST,     default=10"`
	AuditWorkers  int           `env:"AUDIT_WORKERS,   default=4"`
	DeleteLockTTL time.Duration `env:"DELETE_LOCK_TTL, default=30s"`
	// ScanFailClosed makes a failed reference lookup abort a guarded delete
	// instead of counting as "no reference".
	ScanFailClosed bool `env:"REFERENCE_SCAN_FAIL_CLOSED, default=false"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=user_management"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=50"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
