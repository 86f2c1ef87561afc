package handlers

import (
	"net/http"

	v1mware "github.com/arcosplaya/concierge/internal/api/v1/middleware"
	"github.com/arcosplaya/concierge/internal/config"
	"github.com/arcosplaya/concierge/internal/services"
	"github.com/gorilla/mux"
)

// RouteConfig holds the HTTP-facing settings of the v1 routes.
type RouteConfig struct {
	AllowedOrigins []string
	MaxPhotoBytes  int64
}

func RegisterV1Routes(router *mux.Router, svcs *services.Services, cfg RouteConfig) {
	v1 := router.PathPrefix("/v1").Subrouter()

	withSession := func(h http.HandlerFunc) http.Handler {
		return v1mware.WithSession(svcs.GetSessionService())(h)
	}
	upgrader := NewUpgrader(cfg.AllowedOrigins)
	panels := svcs.GetPanelManager()
	photoService := svcs.GetPhotoService()

	// Public v1 routes (no session required)
	v1.HandleFunc("/concierge.js", func(w http.ResponseWriter, r *http.Request) {
		HandleConciergeJS(svcs.GetSessionService(), w, r)
	}).Methods("GET")
	v1.HandleFunc("/photos/{handle}", func(w http.ResponseWriter, r *http.Request) {
		HandleGetPhoto(photoService, w, r)
	}).Methods("GET")

	// Page content
	v1.Handle("/content/{lang}", withSession(func(w http.ResponseWriter, r *http.Request) {
		HandleContent(svcs.GetSiteService(), w, r)
	})).Methods("GET")

	// Concierge
	v1.Handle("/concierge/ask", withSession(func(w http.ResponseWriter, r *http.Request) {
		HandleAsk(svcs.GetConciergeService(), w, r)
	})).Methods("POST")

	// Panel
	v1.Handle("/panel", withSession(func(w http.ResponseWriter, r *http.Request) {
		HandlePanelGet(panels, w, r)
	})).Methods("GET")
	v1.Handle("/panel/open", withSession(func(w http.ResponseWriter, r *http.Request) {
		HandlePanelOpen(panels, w, r)
	})).Methods("POST")
	v1.Handle("/panel/close", withSession(func(w http.ResponseWriter, r *http.Request) {
		HandlePanelClose(panels, w, r)
	})).Methods("POST")
	v1.Handle("/panel/submit", withSession(func(w http.ResponseWriter, r *http.Request) {
		HandlePanelSubmit(panels, w, r)
	})).Methods("POST")
	v1.Handle("/panel/ws", withSession(func(w http.ResponseWriter, r *http.Request) {
		HandlePanelWebSocket(panels, svcs.GetConnectionsManager(), upgrader, w, r)
	})).Methods("GET")

	// Photos; /gallery must be registered before the slot catch-all
	uploadLimit := v1mware.RateLimit("photo_upload")
	v1.Handle("/photos/gallery", uploadLimit(withSession(func(w http.ResponseWriter, r *http.Request) {
		HandleAddGalleryPhoto(photoService, cfg.MaxPhotoBytes, w, r)
	}))).Methods("POST")
	v1.Handle("/photos/{slot:.+}", uploadLimit(withSession(func(w http.ResponseWriter, r *http.Request) {
		HandleReplacePhoto(photoService, cfg.MaxPhotoBytes, w, r)
	}))).Methods("POST")
	v1.Handle("/photos", withSession(func(w http.ResponseWriter, r *http.Request) {
		HandleReleasePhotos(photoService, w, r)
	})).Methods("DELETE")

	// Contact
	v1.Handle("/contact", v1mware.RateLimit("contact")(withSession(func(w http.ResponseWriter, r *http.Request) {
		HandleContact(svcs.GetContactService(), w, r)
	}))).Methods("POST")

	// Session
	v1.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		HandleEndSession(svcs, w, r)
	}).Methods("DELETE")
}

// DefaultRouteConfig reads the route settings from the environment.
func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		AllowedOrigins: config.GetServerConfig().AllowedOrigins,
		MaxPhotoBytes:  config.GetPhotoConfig().MaxBytes,
	}
}
