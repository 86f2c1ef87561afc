package config

import "time"

type PhotoConfig struct {
	MaxBytes   int64
	MaxHandles int
	TTL        time.Duration
}

func GetPhotoConfig() PhotoConfig {
	return PhotoConfig{
		MaxBytes:   int64(parseEnvInt("PHOTO_MAX_BYTES", 8<<20)),
		MaxHandles: parseEnvInt("PHOTO_MAX_HANDLES", 512),
		TTL:        parseEnvDuration("PHOTO_TTL", SessionLifetime),
	}
}
