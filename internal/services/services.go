package services

import (
	"context"
	"sync"

	"github.com/arcosplaya/concierge/internal/config"
	"github.com/arcosplaya/concierge/internal/connections"
	"github.com/arcosplaya/concierge/internal/infrastructure/redis"
	"github.com/arcosplaya/concierge/internal/services/concierge"
	"github.com/arcosplaya/concierge/internal/services/contact"
	"github.com/arcosplaya/concierge/internal/services/panel"
	"github.com/arcosplaya/concierge/internal/services/photos"
	"github.com/arcosplaya/concierge/internal/services/session"
	"github.com/arcosplaya/concierge/internal/services/site"
	"github.com/rs/zerolog/log"
)

var (
	// Mutex for thread-safe initialization
	servicesMu sync.RWMutex
)

// Config carries everything read from the environment at startup.
type Config struct {
	Concierge config.ConciergeConfig
	Redis     config.RedisConfig
	Photos    config.PhotoConfig
	Panels    config.PanelConfig
}

// LoadConfig reads every service setting from the environment.
func LoadConfig() Config {
	return Config{
		Concierge: config.GetConciergeConfig(),
		Redis:     config.GetRedisConfig(),
		Photos:    config.GetPhotoConfig(),
		Panels:    config.GetPanelConfig(),
	}
}

type Services struct {
	redisService       *redis.Service
	sessionService     *session.Service
	conciergeService   *concierge.Service
	panelManager       *panel.Manager
	photoService       *photos.Service
	siteService        *site.Service
	contactService     *contact.Service
	connectionsManager *connections.Manager
}

// InitializeServices wires every service. Only the generator is optional
// beyond Redis: without it every concierge answer is the unavailable message.
func InitializeServices(ctx context.Context, cfg Config) (*Services, error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	log.Info().Msg("Initializing core services")

	// Initialize Redis service (optional)
	redisService := redis.NewService(cfg.Redis)

	sessionService := session.NewService(redisService)
	contactService := contact.NewService(redisService)
	log.Info().Msg("Initialized session and contact services")

	if latest, err := contactService.Recent(ctx, 1); err != nil {
		log.Warn().Err(err).Msg("Contact store unreachable at startup")
	} else if len(latest) > 0 {
		log.Info().
			Str("id", latest[0].ID).
			Time("created_at", latest[0].CreatedAt).
			Msg("Latest contact request on record")
	}

	generator, err := concierge.NewGenerator(ctx, cfg.Concierge)
	if err != nil {
		log.Error().
			Err(err).
			Str("provider", cfg.Concierge.Provider).
			Msg("Concierge generator unavailable - every answer will be the fallback message")
	}
	conciergeService := concierge.NewService(generator, cfg.Concierge)
	panelManager := panel.NewManager(conciergeService, cfg.Panels.MaxPanels, cfg.Panels.TTL)
	log.Info().
		Str("provider", cfg.Concierge.Provider).
		Str("model", cfg.Concierge.Model).
		Msg("Initialized concierge")

	photoService := photos.NewService(photos.NewStore(cfg.Photos.MaxHandles, cfg.Photos.TTL), cfg.Photos)
	siteService := site.NewService(photoService)

	log.Info().Msg("All services initialized successfully")

	return &Services{
		redisService:       redisService,
		sessionService:     sessionService,
		conciergeService:   conciergeService,
		panelManager:       panelManager,
		photoService:       photoService,
		siteService:        siteService,
		contactService:     contactService,
		connectionsManager: connections.NewManager(connections.DefaultTimeouts),
	}, nil
}

// Close releases external connections
func (s *Services) Close() {
	if n := s.connectionsManager.CloseAll(); n > 0 {
		log.Info().Int("connections", n).Msg("Closed panel websockets")
	}
	if s.redisService != nil {
		if err := s.redisService.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
}

func (s *Services) GetSessionService() *session.Service {
	return s.sessionService
}

func (s *Services) GetConciergeService() *concierge.Service {
	return s.conciergeService
}

func (s *Services) GetPanelManager() *panel.Manager {
	return s.panelManager
}

func (s *Services) GetPhotoService() *photos.Service {
	return s.photoService
}

func (s *Services) GetSiteService() *site.Service {
	return s.siteService
}

func (s *Services) GetContactService() *contact.Service {
	return s.contactService
}

func (s *Services) GetConnectionsManager() *connections.Manager {
	return s.connectionsManager
}
