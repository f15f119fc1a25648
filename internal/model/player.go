package model

import (
	"strings"
	"time"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// TownCode is the human-readable identifier players use to join a town
type TownCode string

// Role is a secret role label assigned to a player at game start.
// Empty until the town's game has started.
type Role string

// RoleSheriff is the mandatory lawman role, exactly one per town
const RoleSheriff Role = "Sheriff"

// IsMostWanted reports whether the role is the town's outlaw role.
// The label is parameterized by town code, so match on the marker text.
func (r Role) IsMostWanted() bool {
	return strings.Contains(string(r), "Most Wanted")
}

// Player represents one participant in a town.
// Name is unique within the town; TownCode is immutable after creation;
// Role is written exactly once, at game start.
type Player struct {
	ID       PlayerID
	Name     string
	TownCode TownCode
	Role     Role
	JoinedAt time.Time
}

// TownState represents the lifecycle state of a town
type TownState string

const (
	TownStateWaiting TownState = "waiting" // Gathering players
	TownStateStarted TownState = "started" // Roles assigned, game underway
)

// Quorum bounds: a town starts only with a player count in this range
const (
	MinPlayers = 5
	MaxPlayers = 10
)

// Town is a derived view over the players sharing a code; it is never
// stored as its own entity.
type Town struct {
	Code    TownCode
	State   TownState
	Players []*Player
}

// GetPlayer returns the player with the given name, or nil if not present
func (t *Town) GetPlayer(name string) *Player {
	for _, p := range t.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// GetSheriff returns the town's Sheriff, or nil before the game starts
func (t *Town) GetSheriff() *Player {
	for _, p := range t.Players {
		if p.Role == RoleSheriff {
			return p
		}
	}
	return nil
}

// GetMostWanted returns the town's Most Wanted, or nil before the game starts
func (t *Town) GetMostWanted() *Player {
	for _, p := range t.Players {
		if p.Role.IsMostWanted() {
			return p
		}
	}
	return nil
}
