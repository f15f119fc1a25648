package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tumbleweed-games/mostwanted/internal/api/handler"
	"github.com/tumbleweed-games/mostwanted/internal/middleware"
	"github.com/tumbleweed-games/mostwanted/internal/services/registry"
	"github.com/tumbleweed-games/mostwanted/internal/services/session"
	"github.com/tumbleweed-games/mostwanted/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Registry    *registry.Controller
	Coordinator *session.Coordinator
	HubManager  *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	townHandler := handler.NewTownHandler(cfg.Registry, cfg.Coordinator, cfg.HubManager, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/towns", townHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/towns/{code}", townHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/towns/{code}/join", townHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/towns/{code}/start", townHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/towns/{code}/players/{name}/view", townHandler.View).Methods(http.MethodGet)
	api.HandleFunc("/towns/{code}/events", townHandler.Events).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
