// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the binaries need at startup. The Gemini API key
// is the only required value; it may legitimately be empty when the operator
// intends to configure it later via the credential-selection flow, so
// presence is checked by the operations that need it rather than here.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// Model overrides. Defaults track the models the site was built against.
	AdviceModel string `env:"GEMINI_ADVICE_MODEL" envDefault:"gemini-3-flash-preview"`
	ImageModel  string `env:"GEMINI_IMAGE_MODEL" envDefault:"gemini-2.5-flash-image"`
	VideoModel  string `env:"GEMINI_VIDEO_MODEL" envDefault:"veo-3.1-fast-generate-preview"`
	NearbyModel string `env:"GEMINI_NEARBY_MODEL" envDefault:"gemini-2.5-flash"`

	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Video job polling. The interval matches the provider's guidance for
	// Veo operations; the attempt bound keeps a stuck job from polling
	// forever.
	VideoPollInterval time.Duration `env:"VIDEO_POLL_INTERVAL" envDefault:"10s"`
	VideoMaxPolls     int           `env:"VIDEO_MAX_POLLS" envDefault:"60"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// A missing .env file is not an error; env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.VideoPollInterval <= 0 {
		return nil, fmt.Errorf("VIDEO_POLL_INTERVAL must be positive")
	}
	if cfg.VideoMaxPolls <= 0 {
		return nil, fmt.Errorf("VIDEO_MAX_POLLS must be positive")
	}
	return cfg, nil
}
