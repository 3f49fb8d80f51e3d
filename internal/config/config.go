package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	RedisURL        string        `env:"REDIS_URL"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	FrontendBaseURL string        `env:"FRONTEND_BASE_URL" envDefault:"http://localhost:3000"`
	GeocoderBaseURL string        `env:"GEOCODER_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocodeCacheTTL time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"720h"`
	SeedAdminEmail  string        `env:"SEED_ADMIN_EMAIL"`
	SeedAdminPass   string        `env:"SEED_ADMIN_PASSWORD"`
}

// Load reads .env when present, then parses the environment into Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
