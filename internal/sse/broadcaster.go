package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/tumbleweed-games/mostwanted/internal/model"
)

// Broadcaster turns session events into SSE broadcasts on the owning
// town's hub. It satisfies the session coordinator's Notifier contract.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// GameStarted broadcasts the start event to the town's connections.
// Towns with no hub (nobody listening) are a no-op.
func (b *Broadcaster) GameStarted(code model.TownCode) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		return
	}

	data, err := json.Marshal(model.NewGameStartedEvent(code))
	if err != nil {
		b.logger.Error("sse failed to encode start event",
			slog.String("town", string(code)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(model.ActionStartGame, string(data))
}

// PlayerJoined notifies the town's waiting room that its member list grew
func (b *Broadcaster) PlayerJoined(code model.TownCode, name string) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		return
	}

	data, err := json.Marshal(map[string]string{
		"action":   "playerJoined",
		"townCode": string(code),
		"name":     name,
	})
	if err != nil {
		b.logger.Error("sse failed to encode join event",
			slog.String("town", string(code)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent("playerJoined", string(data))
}
