package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/arcosplaya/concierge/internal/content"
	"github.com/arcosplaya/concierge/internal/infrastructure/redis"
	"github.com/arcosplaya/concierge/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	requestsKey = "contact:requests"
	maxKept     = 1000
)

var ErrInvalidRequest = errors.New("invalid contact request")

// Request is what a visitor sends from the contact form.
type Request struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Message  string `json:"message" validate:"required,max=2000"`
	Language string `json:"language" validate:"omitempty,oneof=en es fr de it"`
}

// Submission is a stored contact request.
type Submission struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Message   string           `json:"message"`
	Language  content.Language `json:"language"`
	CreatedAt time.Time        `json:"created_at"`
}

type Store interface {
	Add(ctx context.Context, s *Submission) error
	Recent(ctx context.Context, n int) ([]*Submission, error)
}

type RedisStore struct {
	redisService *redis.Service
}

type MemoryStore struct {
	mu          sync.RWMutex
	submissions []*Submission
}

type Service struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
}

func NewService(redisService *redis.Service) *Service {
	var store Store
	if redisService != nil {
		log.Info().Msg("Using Redis for contact request storage")
		store = &RedisStore{redisService: redisService}
	} else {
		log.Info().Msg("Using in-memory contact request storage")
		store = &MemoryStore{}
	}

	return NewServiceWithStore(store)
}

func NewServiceWithStore(store Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// Redis Store implementation
func (rs *RedisStore) Add(ctx context.Context, s *Submission) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return rs.redisService.PushCapped(ctx, requestsKey, string(data), maxKept)
}

func (rs *RedisStore) Recent(ctx context.Context, n int) ([]*Submission, error) {
	entries, err := rs.redisService.Range(ctx, requestsKey, int64(n))
	if err != nil {
		return nil, err
	}

	out := make([]*Submission, 0, len(entries))
	for _, entry := range entries {
		var s Submission
		if err := json.Unmarshal([]byte(entry), &s); err != nil {
			log.Warn().Err(err).Msg("Skipping unreadable contact request")
			continue
		}
		out = append(out, &s)
	}
	return out, nil
}

// Memory Store implementation
func (ms *MemoryStore) Add(ctx context.Context, s *Submission) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.submissions = append([]*Submission{s}, ms.submissions...)
	if len(ms.submissions) > maxKept {
		ms.submissions = ms.submissions[:maxKept]
	}
	return nil
}

func (ms *MemoryStore) Recent(ctx context.Context, n int) ([]*Submission, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if n > len(ms.submissions) {
		n = len(ms.submissions)
	}
	return append([]*Submission(nil), ms.submissions[:n]...), nil
}

// Submit validates and stores a contact request.
func (s *Service) Submit(ctx context.Context, req Request) (*Submission, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	req.Language = strings.ToLower(strings.TrimSpace(req.Language))

	if err := s.validate.Struct(req); err != nil {
		metrics.ContactRequests.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	lang := content.DefaultLanguage
	if req.Language != "" {
		lang = content.Language(req.Language)
	}

	sub := &Submission{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Language:  lang,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Add(ctx, sub); err != nil {
		metrics.ContactRequests.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("storing contact request: %w", err)
	}

	metrics.ContactRequests.WithLabelValues("stored").Inc()
	log.Info().
		Str("id", sub.ID).
		Str("language", string(sub.Language)).
		Msg("Contact request received")

	return sub, nil
}

// Recent returns up to n submissions, newest first.
func (s *Service) Recent(ctx context.Context, n int) ([]*Submission, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.store.Recent(ctx, n)
}
