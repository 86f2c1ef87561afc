package concierge

import (
	"context"
	"fmt"

	"github.com/arcosplaya/concierge/internal/config"
	"github.com/arcosplaya/concierge/internal/infrastructure/gemini"
	"github.com/arcosplaya/concierge/internal/infrastructure/openai"
)

// Generator performs one request/response exchange with a hosted text model.
// An empty string with a nil error means the model answered without text.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// NewGenerator builds the generator selected by cfg.Provider.
func NewGenerator(ctx context.Context, cfg config.ConciergeConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		svc, err := openai.NewService(openai.Config{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.ProviderGemini, "":
		svc, err := gemini.NewService(ctx, gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown concierge provider %q", cfg.Provider)
	}
}
