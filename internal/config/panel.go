package config

import "time"

type PanelConfig struct {
	MaxPanels int
	TTL       time.Duration
}

func GetPanelConfig() PanelConfig {
	return PanelConfig{
		MaxPanels: parseEnvInt("PANEL_MAX", 10000),
		TTL:       parseEnvDuration("PANEL_TTL", SessionLifetime),
	}
}
