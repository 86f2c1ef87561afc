package config

import (
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ConciergeConfig is everything the assistant client needs. It is read once
// at startup and handed to the client; the client never looks at the
// environment itself.
type ConciergeConfig struct {
	Provider        string
	Model           string
	APIKey          string
	BaseURL         string
	Persona         string
	Unavailable     string
	CouldNotProcess string
}

const DefaultPersona = `You are a helpful, polite, and knowledgeable AI Concierge for "Apartamentos Arcos Playa", a luxury mediterranean holiday apartment complex.
Your goal is to help guests with itineraries, food recommendations, and local tips.
Keep responses concise, welcoming, and relaxed.
Respond in the language: {{language}}.
If asked about the hotel, invent plausible luxury details (infinity pool, direct beach access, etc.).`

const (
	DefaultUnavailableMessage     = "Service temporarily unavailable. Please try again later."
	DefaultCouldNotProcessMessage = "I'm sorry, I couldn't process that request right now. Please ask the reception."
)

// GetConciergeConfig builds the assistant configuration from CONCIERGE_* variables.
func GetConciergeConfig() ConciergeConfig {
	provider := strings.ToLower(GetEnvOrDefault("CONCIERGE_PROVIDER", ProviderGemini))

	cfg := ConciergeConfig{
		Provider:        provider,
		BaseURL:         GetEnvOrDefault("CONCIERGE_BASE_URL", ""),
		Persona:         GetEnvOrDefault("CONCIERGE_PERSONA", DefaultPersona),
		Unavailable:     GetEnvOrDefault("CONCIERGE_UNAVAILABLE_MESSAGE", DefaultUnavailableMessage),
		CouldNotProcess: GetEnvOrDefault("CONCIERGE_EMPTY_MESSAGE", DefaultCouldNotProcessMessage),
	}

	switch provider {
	case ProviderOpenAI:
		cfg.Model = GetEnvOrDefault("CONCIERGE_MODEL", "gpt-4o-mini")
		cfg.APIKey = GetEnvOrDefault("OPENAI_KEY", "")
	default:
		if provider != ProviderGemini {
			log.Warn().Str("provider", provider).Msg("Unknown concierge provider, falling back to gemini")
			cfg.Provider = ProviderGemini
		}
		cfg.Model = GetEnvOrDefault("CONCIERGE_MODEL", "gemini-2.5-flash")
		cfg.APIKey = GetEnvOrDefault("GEMINI_API_KEY", GetEnvOrDefault("API_KEY", ""))
	}

	if cfg.APIKey == "" {
		log.Warn().Str("provider", cfg.Provider).Msg("Concierge API key not set - every question will get the unavailable message")
	}

	return cfg
}
