package response

import (
	"time"

	"github.com/tumbleweed-games/mostwanted/internal/model"
	"github.com/tumbleweed-games/mostwanted/internal/services/session"
)

// Player represents a player in API responses
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	TownCode string    `json:"town_code"`
	Role     string    `json:"role,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       string(p.ID),
		Name:     p.Name,
		TownCode: string(p.TownCode),
		Role:     string(p.Role),
		JoinedAt: p.JoinedAt,
	}
}

// CreateTownResponse is the response for founding a town
type CreateTownResponse struct {
	TownCode string `json:"town_code"`
	Player   Player `json:"player"`
}

// Town represents the derived town view: player names in join order plus
// the waiting message while below quorum
type Town struct {
	Code    string   `json:"code"`
	State   string   `json:"state"`
	Players []string `json:"players"`
	Message string   `json:"message,omitempty"`
}

// TownFromModel converts model.Town
func TownFromModel(t *model.Town) Town {
	names := make([]string, len(t.Players))
	for i, p := range t.Players {
		names[i] = p.Name
	}

	message := ""
	if t.State == model.TownStateWaiting && len(t.Players) < model.MinPlayers {
		message = session.WaitingMessage
	}

	return Town{
		Code:    string(t.Code),
		State:   string(t.State),
		Players: names,
		Message: message,
	}
}

// StartGameResponse confirms a successful start
type StartGameResponse struct {
	Message  string `json:"message"`
	TownCode string `json:"town_code"`
}

// GameView is one player's view of a started game
type GameView struct {
	Player     Player `json:"player"`
	Sheriff    Player `json:"sheriff"`
	MostWanted Player `json:"most_wanted"`
}

// GameViewFromModel converts session.GameView
func GameViewFromModel(v *session.GameView) GameView {
	return GameView{
		Player:     PlayerFromModel(v.Player),
		Sheriff:    PlayerFromModel(v.Sheriff),
		MostWanted: PlayerFromModel(v.MostWanted),
	}
}
