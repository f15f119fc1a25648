package model

// Event action names sent to connected clients
const (
	ActionStartGame = "startGame"
)

// GameStartedEvent is broadcast to a town's connections when its game
// starts. Emitted exactly once per successful start.
type GameStartedEvent struct {
	Action   string   `json:"action"`
	TownCode TownCode `json:"townCode"`
}

// NewGameStartedEvent builds the start event for a town
func NewGameStartedEvent(code TownCode) GameStartedEvent {
	return GameStartedEvent{
		Action:   ActionStartGame,
		TownCode: code,
	}
}
