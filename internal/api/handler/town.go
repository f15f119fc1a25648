package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tumbleweed-games/mostwanted/internal/api/apierr"
	"github.com/tumbleweed-games/mostwanted/internal/api/request"
	"github.com/tumbleweed-games/mostwanted/internal/api/response"
	"github.com/tumbleweed-games/mostwanted/internal/model"
	"github.com/tumbleweed-games/mostwanted/internal/services/registry"
	"github.com/tumbleweed-games/mostwanted/internal/services/session"
	"github.com/tumbleweed-games/mostwanted/internal/sse"
)

// TownHandler handles town lifecycle endpoints
type TownHandler struct {
	registry    *registry.Controller
	coordinator *session.Coordinator
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
}

// NewTownHandler creates a new town handler
func NewTownHandler(reg *registry.Controller, coordinator *session.Coordinator, hubManager *sse.HubManager, logger *slog.Logger) *TownHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &TownHandler{
		registry:    reg,
		coordinator: coordinator,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

// Create handles POST /api/v1/towns
func (h *TownHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.TownName) == "" || strings.TrimSpace(req.HostName) == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("town_name and host_name are required"))
		return
	}

	player, err := h.registry.RegisterHost(r.Context(), req.HostName, req.TownName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateTownResponse{
		TownCode: string(player.TownCode),
		Player:   response.PlayerFromModel(player),
	})
}

// Get handles GET /api/v1/towns/{code}
func (h *TownHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.TownCode(mux.Vars(r)["code"])

	town, err := h.coordinator.GetTown(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TownFromModel(town))
}

// Join handles POST /api/v1/towns/{code}/join
func (h *TownHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.TownCode(mux.Vars(r)["code"])

	var req request.JoinTownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.PlayerName) == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player_name is required"))
		return
	}

	player, err := h.registry.RegisterGuest(r.Context(), code, req.PlayerName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.PlayerJoined(code, player.Name)
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Start handles POST /api/v1/towns/{code}/start
func (h *TownHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := model.TownCode(mux.Vars(r)["code"])

	if err := h.coordinator.StartGame(r.Context(), code); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StartGameResponse{
		Message:  "Game started",
		TownCode: string(code),
	})
}

// View handles GET /api/v1/towns/{code}/players/{name}/view
func (h *TownHandler) View(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.TownCode(vars["code"])
	name := vars["name"]

	view, err := h.coordinator.GetGameView(r.Context(), code, name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameViewFromModel(view))
}

// Events handles GET /api/v1/towns/{code}/events
func (h *TownHandler) Events(w http.ResponseWriter, r *http.Request) {
	code := model.TownCode(mux.Vars(r)["code"])

	hub := h.hubManager.GetOrCreateHub(code)
	sse.ServeSSE(w, r, hub)
}
