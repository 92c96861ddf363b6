package config

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret signs tokens when JWT_SECRET is not configured. Development
// only; ResolveJWTSecret warns loudly whenever it is used.
const DevJWTSecret = "your-secret-key"

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=todolist"`
}

type RedisConfig struct {
	Enabled bool   `env:"REDIS_ENABLED, default=false"`
	Addr    string `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int    `env:"REDIS_DB,      default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// ResolveJWTSecret returns the configured signing key, falling back to the
// development key with a startup warning when JWT_SECRET is absent.
func (c *Config) ResolveJWTSecret(log zerolog.Logger) string {
	if c.JWTSecret != "" {
		return c.JWTSecret
	}
	log.Warn().Msg("JWT_SECRET is not set; falling back to the development signing key — do not run this in production")
	return DevJWTSecret
}
