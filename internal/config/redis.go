package config

import (
	"github.com/rs/zerolog/log"
)

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// GetRedisConfig returns the optional Redis connection settings. An empty URL
// means every store falls back to memory.
func GetRedisConfig() RedisConfig {
	cfg := RedisConfig{
		URL:      GetEnvOrDefault("REDIS_URL", ""),
		Password: GetEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       parseEnvInt("REDIS_DB", 0),
	}

	if cfg.URL == "" {
		log.Info().Msg("REDIS_URL not set - using in-memory stores")
	} else {
		log.Info().Str("addr", cfg.URL).Msg("Redis URL successfully loaded")
	}

	return cfg
}
