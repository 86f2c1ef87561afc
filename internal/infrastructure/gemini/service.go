package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	genai "google.golang.org/genai"
)

var ErrNotConfigured = errors.New("gemini: API key not configured")

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint; empty uses the SDK default.
	BaseURL string
}

// Service is a thin wrapper around the official genai client. It performs a
// single non-streaming generateContent call per request.
type Service struct {
	client *genai.Client
	model  string
}

func NewService(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	log.Info().Str("model", cfg.Model).Msg("Gemini service initialised")

	return &Service{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Generate sends prompt as the only user turn with systemInstruction as the
// system preamble and returns the text of the first candidate, without
// thought parts. A response without text yields "" and a nil error.
func (s *Service) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	if c := resp.Candidates[0]; c == nil || c.Content == nil {
		return ""
	}
	return resp.Text()
}
