package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Cache    CacheConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	SignIn   SignInConfig
	Activity ActivityConfig
}

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:3000"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=30s"`
}

type CacheConfig struct {
	TTL       time.Duration `env:"CACHE_TTL,       default=30s"`
	Retention time.Duration `env:"CACHE_RETENTION, default=10m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=siteflow_gateway"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SignInConfig bounds the per-IP sign-in rate.
type SignInConfig struct {
	RatePerMinute int `env:"SIGNIN_RATE_PER_MINUTE, default=10"`
	Burst         int `env:"SIGNIN_BURST,           default=5"`
}

type ActivityConfig struct {
	Workers int `env:"ACTIVITY_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return &cfg
}
