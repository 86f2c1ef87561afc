package concierge

import (
	"context"
	"testing"

	"github.com/arcosplaya/concierge/internal/config"
	"github.com/arcosplaya/concierge/internal/infrastructure/gemini"
	"github.com/arcosplaya/concierge/internal/infrastructure/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("gemini", func(t *testing.T) {
		gen, err := NewGenerator(ctx, config.ConciergeConfig{Provider: config.ProviderGemini, APIKey: "k", Model: "gemini-2.5-flash"})
		require.NoError(t, err)
		assert.IsType(t, &gemini.Service{}, gen)
	})

	t.Run("blank provider is gemini", func(t *testing.T) {
		gen, err := NewGenerator(ctx, config.ConciergeConfig{APIKey: "k", Model: "gemini-2.5-flash"})
		require.NoError(t, err)
		assert.IsType(t, &gemini.Service{}, gen)
	})

	t.Run("openai", func(t *testing.T) {
		gen, err := NewGenerator(ctx, config.ConciergeConfig{Provider: config.ProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini"})
		require.NoError(t, err)
		assert.IsType(t, &openai.Service{}, gen)
	})

	t.Run("missing key", func(t *testing.T) {
		gen, err := NewGenerator(ctx, config.ConciergeConfig{Provider: config.ProviderOpenAI})
		assert.Nil(t, gen)
		assert.ErrorIs(t, err, openai.ErrNotConfigured)
	})

	t.Run("unknown provider", func(t *testing.T) {
		gen, err := NewGenerator(ctx, config.ConciergeConfig{Provider: "palm", APIKey: "k"})
		assert.Nil(t, gen)
		assert.Error(t, err)
	})
}
