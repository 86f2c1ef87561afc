package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1handlers "github.com/arcosplaya/concierge/internal/api/v1/handlers"
	"github.com/arcosplaya/concierge/internal/config"
	"github.com/arcosplaya/concierge/internal/services"
	"github.com/arcosplaya/concierge/pkg/httpext"
	"github.com/arcosplaya/concierge/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadDotEnv()
	logger.Init()

	serverCfg := config.GetServerConfig()

	svcs, err := services.InitializeServices(context.Background(), services.LoadConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           setupRouter(svcs, v1handlers.DefaultRouteConfig()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// hijacked websockets are not tracked by Shutdown
	svcs.Close()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

func setupRouter(svcs *services.Services, cfg v1handlers.RouteConfig) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpext.JsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1handlers.RegisterV1Routes(r, svcs, cfg)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpext.JsonError(w, "Not found", http.StatusNotFound)
	})

	return r
}
