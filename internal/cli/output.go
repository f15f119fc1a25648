package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case CreateTownResult:
		o.printCreateTownResult(v)
	case Town:
		o.printTown(v)
	case StartGameResult:
		o.printStartGameResult(v)
	case GameView:
		o.printGameView(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	TownCode string    `json:"town_code"`
	Role     string    `json:"role,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// CreateTownResult response type
type CreateTownResult struct {
	TownCode string `json:"town_code"`
	Player   Player `json:"player"`
}

// Town response type
type Town struct {
	Code    string   `json:"code"`
	State   string   `json:"state"`
	Players []string `json:"players"`
	Message string   `json:"message,omitempty"`
}

// StartGameResult response type
type StartGameResult struct {
	Message  string `json:"message"`
	TownCode string `json:"town_code"`
}

// GameView response type
type GameView struct {
	Player     Player `json:"player"`
	Sheriff    Player `json:"sheriff"`
	MostWanted Player `json:"most_wanted"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Name)
	fmt.Printf("Town: %s\n", p.TownCode)
	if p.Role != "" {
		fmt.Printf("Role: %s\n", p.Role)
	}
}

func (o *Output) printCreateTownResult(r CreateTownResult) {
	fmt.Printf("Town: %s\n", r.TownCode)
	fmt.Printf("Host: %s\n", r.Player.Name)
}

func (o *Output) printTown(t Town) {
	fmt.Printf("Town: %s\n", t.Code)
	fmt.Printf("State: %s\n", t.State)
	fmt.Printf("Players (%d):\n", len(t.Players))
	for _, name := range t.Players {
		fmt.Printf("  - %s\n", name)
	}
	if t.Message != "" {
		fmt.Println(t.Message)
	}
}

func (o *Output) printStartGameResult(r StartGameResult) {
	fmt.Printf("%s: %s\n", r.Message, r.TownCode)
}

func (o *Output) printGameView(v GameView) {
	fmt.Printf("You are %s: %s\n", v.Player.Name, v.Player.Role)
	fmt.Printf("Sheriff: %s\n", v.Sheriff.Name)
	fmt.Printf("Most Wanted: %s\n", v.MostWanted.Name)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
