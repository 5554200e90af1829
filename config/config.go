package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	PostgresConnStr       string        `envconfig:"POSTGRES_CONN_STR" required:"true"`
	Port                  int           `envconfig:"PORT" default:"3000"`
	PlayerUpdateFrequency time.Duration `envconfig:"PLAYER_UPDATE_FREQUENCY" default:"24h"`
	LogLevel              string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error reading config from environment: %w", err)
	}
	return &cfg, nil
}
