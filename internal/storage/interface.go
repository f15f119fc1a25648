package storage

import (
	"context"

	"github.com/tumbleweed-games/mostwanted/internal/model"
)

// PlayerStore defines the interface for player persistence.
//
// The two Create operations are conditional writes: the uniqueness checks
// they imply (town code vacancy, per-town name exclusivity) are evaluated
// atomically with the write, so concurrent contenders serialize inside the
// store rather than racing a separate read-then-write.
type PlayerStore interface {
	// CreateHostPlayer persists the founding player of a new town.
	// Fails with model.ErrTownCodeTaken if any player already exists
	// under player.TownCode.
	CreateHostPlayer(ctx context.Context, player *model.Player) error

	// CreateGuestPlayer persists a player joining an existing town.
	// Fails with model.ErrTownNotFound if the town does not exist, or
	// model.ErrDuplicateName if the name is already taken within it.
	CreateGuestPlayer(ctx context.Context, player *model.Player) error

	// GetPlayer returns the player with the given ID
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// FindPlayerByName returns the player with the given name in a town,
	// or model.ErrPlayerNotFound
	FindPlayerByName(ctx context.Context, code model.TownCode, name string) (*model.Player, error)

	// ListPlayers returns all players of a town in join order
	ListPlayers(ctx context.Context, code model.TownCode) ([]*model.Player, error)

	// SetPlayerRole writes a player's role. Roles are assigned once, at
	// game start.
	SetPlayerRole(ctx context.Context, id model.PlayerID, role model.Role) error

	// TownExists reports whether any player is stored under the code
	TownExists(ctx context.Context, code model.TownCode) (bool, error)
}
