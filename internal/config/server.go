package config

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// GetServerConfig returns the listen address and the origins accepted on the
// panel websocket. No origins configured means same-host only.
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           GetEnvOrDefault("LISTEN_ADDR", ":8080"),
		AllowedOrigins: parseEnvList("ALLOWED_ORIGINS"),
	}
}
