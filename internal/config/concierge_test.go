package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConciergeConfig(t *testing.T) {
	tests := []struct {
		name         string
		envVars      map[string]string
		wantProvider string
		wantModel    string
		wantKey      string
	}{
		{
			name:         "defaults to gemini",
			envVars:      map[string]string{"GEMINI_API_KEY": "gemini-key"},
			wantProvider: ProviderGemini,
			wantModel:    "gemini-2.5-flash",
			wantKey:      "gemini-key",
		},
		{
			name:         "legacy API_KEY is honoured for gemini",
			envVars:      map[string]string{"API_KEY": "legacy-key"},
			wantProvider: ProviderGemini,
			wantModel:    "gemini-2.5-flash",
			wantKey:      "legacy-key",
		},
		{
			name: "openai provider",
			envVars: map[string]string{
				"CONCIERGE_PROVIDER": "OpenAI",
				"OPENAI_KEY":         "sk-test",
			},
			wantProvider: ProviderOpenAI,
			wantModel:    "gpt-4o-mini",
			wantKey:      "sk-test",
		},
		{
			name: "unknown provider falls back to gemini",
			envVars: map[string]string{
				"CONCIERGE_PROVIDER": "carrier-pigeon",
				"CONCIERGE_MODEL":    "gemini-2.5-pro",
			},
			wantProvider: ProviderGemini,
			wantModel:    "gemini-2.5-pro",
			wantKey:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"CONCIERGE_PROVIDER", "CONCIERGE_MODEL", "GEMINI_API_KEY", "API_KEY", "OPENAI_KEY"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := GetConciergeConfig()

			assert.Equal(t, tt.wantProvider, cfg.Provider)
			assert.Equal(t, tt.wantModel, cfg.Model)
			assert.Equal(t, tt.wantKey, cfg.APIKey)
			assert.Equal(t, DefaultPersona, cfg.Persona)
			assert.Equal(t, DefaultUnavailableMessage, cfg.Unavailable)
			assert.Equal(t, DefaultCouldNotProcessMessage, cfg.CouldNotProcess)
		})
	}
}

func TestGetRateLimitConfig(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "true")
	t.Setenv("RATELIMIT_CONTACT", "2")

	contact := GetRateLimitConfig("contact")
	assert.True(t, contact.Enabled)
	assert.Equal(t, 2, contact.MaxHits)

	unknown := GetRateLimitConfig("concierge")
	assert.False(t, unknown.Enabled)
}
