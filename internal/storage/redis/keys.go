package redis

import (
	"fmt"

	"github.com/tumbleweed-games/mostwanted/internal/model"
)

// Key prefix for all town-related data
const keyPrefix = "mwgame"

// townKey returns the Redis key for the town marker. Its existence is the
// single source of truth for whether a code is taken.
func townKey(code model.TownCode) string {
	return fmt.Sprintf("%s:town:%s", keyPrefix, code)
}

// townPlayersKey returns the Redis key for the LIST of a town's player IDs,
// in join order
func townPlayersKey(code model.TownCode) string {
	return fmt.Sprintf("%s:town:%s:players", keyPrefix, code)
}

// townNamesKey returns the Redis key for the SET of player names in a town
func townNamesKey(code model.TownCode) string {
	return fmt.Sprintf("%s:town:%s:names", keyPrefix, code)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}
