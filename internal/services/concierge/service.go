package concierge

import (
	"context"
	"fmt"
	"time"

	"github.com/arcosplaya/concierge/internal/config"
	"github.com/arcosplaya/concierge/internal/content"
	"github.com/arcosplaya/concierge/internal/metrics"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	OutcomeAnswered    Outcome = "answered"
	OutcomeEmpty       Outcome = "empty"
	OutcomeUnavailable Outcome = "unavailable"
)

// Asker is what the panel needs from the concierge.
type Asker interface {
	GetResponse(ctx context.Context, query string, lang content.Language) string
}

// Service turns a guest question into display text. It never returns an
// error: failures become one of the two fallback messages.
type Service struct {
	generator       Generator
	prompt          *SystemPrompt
	unavailable     string
	couldNotProcess string
}

// NewService wires a generator with the persona and fallback strings from cfg.
// A nil generator is allowed and answers every question with the
// unavailable message.
func NewService(generator Generator, cfg config.ConciergeConfig) *Service {
	unavailable := cfg.Unavailable
	if unavailable == "" {
		unavailable = config.DefaultUnavailableMessage
	}
	couldNotProcess := cfg.CouldNotProcess
	if couldNotProcess == "" {
		couldNotProcess = config.DefaultCouldNotProcessMessage
	}
	persona := cfg.Persona
	if persona == "" {
		persona = config.DefaultPersona
	}

	return &Service{
		generator:       generator,
		prompt:          NewSystemPrompt(persona),
		unavailable:     unavailable,
		couldNotProcess: couldNotProcess,
	}
}

// GetResponse returns the model's text verbatim, the could-not-process
// message for an empty answer, or the unavailable message on any failure.
func (s *Service) GetResponse(ctx context.Context, query string, lang content.Language) string {
	text, _ := s.Ask(ctx, query, lang)
	return text
}

// Ask is GetResponse plus the outcome classification.
func (s *Service) Ask(ctx context.Context, query string, lang content.Language) (text string, outcome Outcome) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Concierge generator panicked")
			text, outcome = s.unavailable, OutcomeUnavailable
		}

		metrics.ConciergeRequests.WithLabelValues(string(outcome)).Inc()
		metrics.ConciergeDuration.Observe(time.Since(start).Seconds())

		log.Info().
			Str("language", lang.String()).
			Int("query_length", len(query)).
			Str("outcome", string(outcome)).
			Dur("elapsed", time.Since(start)).
			Msg("Concierge question settled")
	}()

	if s.generator == nil {
		log.Error().Msg("Concierge generator not configured")
		return s.unavailable, OutcomeUnavailable
	}

	answer, err := s.generator.Generate(ctx, s.prompt.For(lang), query)
	if err != nil {
		log.Error().Err(fmt.Errorf("generating concierge response: %w", err)).Msg("Concierge service unavailable")
		return s.unavailable, OutcomeUnavailable
	}

	if answer == "" {
		return s.couldNotProcess, OutcomeEmpty
	}

	return answer, OutcomeAnswered
}
