package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Routing RoutingConfig
	Sweeper SweeperConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cargo_tracking"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// RoutingConfig points at the external road-routing provider. An empty
// API key disables geometry entirely.
type RoutingConfig struct {
	BaseURL string        `env:"ORS_BASE_URL"`
	APIKey  string        `env:"ORS_API_KEY"`
	Timeout time.Duration `env:"GEOMETRY_TIMEOUT, default=3s"`
}

type SweeperConfig struct {
	Enabled  bool   `env:"DELAY_SWEEP_ENABLED,  default=true"`
	Schedule string `env:"DELAY_SWEEP_SCHEDULE, default=@every 10m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
