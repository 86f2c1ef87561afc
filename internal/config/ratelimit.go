package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

type RateLimitConfig struct {
	Enabled bool
	MaxHits int
	Window  time.Duration
}

// GetRateLimitConfig returns the inbound limit for a route key. Only visitor
// write paths are limited; the concierge itself is not.
func GetRateLimitConfig(key string) RateLimitConfig {
	enabled := GetEnvOrDefault("RATELIMIT_ENABLED", "true") == "true"

	configs := map[string]RateLimitConfig{
		"contact": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_CONTACT", 5), // 5 requests per minute
			Window:  time.Minute,
		},
		"photo_upload": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_PHOTO_UPLOAD", 30), // 30 uploads per minute
			Window:  time.Minute,
		},
	}

	if cfg, exists := configs[key]; exists {
		return cfg
	}

	log.Warn().Str("key", key).Msg("No rate limit config found")
	return RateLimitConfig{Enabled: false}
}
