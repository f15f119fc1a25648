package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tumbleweed-games/mostwanted/internal/dependencies/clock"
	"github.com/tumbleweed-games/mostwanted/internal/model"
	"github.com/tumbleweed-games/mostwanted/internal/storage"
)

// Controller owns town membership: code allocation, host and guest
// registration, and join-order listing
type Controller struct {
	store  storage.PlayerStore
	clock  clock.Clock
	logger *slog.Logger
}

// NewController creates a new registry Controller
func NewController(store storage.PlayerStore, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		store:  store,
		clock:  clk,
		logger: logger.With(slog.String("component", "registry")),
	}
}

// RegisterHost founds a new town for the host player. The town code is the
// requested name if vacant, otherwise the name with the first free numeric
// suffix (Dodge, Dodge1, Dodge2, ...). The store's conditional create is
// the serialization point, so concurrent hosts asking for the same name
// end up in distinct towns.
func (c *Controller) RegisterHost(ctx context.Context, hostName, townName string) (*model.Player, error) {
	for suffix := 0; ; suffix++ {
		code := model.TownCode(townName)
		if suffix > 0 {
			code = model.TownCode(fmt.Sprintf("%s%d", townName, suffix))
		}

		player := &model.Player{
			ID:       model.PlayerID(uuid.NewString()),
			Name:     hostName,
			TownCode: code,
			JoinedAt: c.clock.Now(),
		}

		err := c.store.CreateHostPlayer(ctx, player)
		if errors.Is(err, model.ErrTownCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		c.logger.Info("town created",
			slog.String("town", string(code)),
			slog.String("host", hostName))
		return player, nil
	}
}

// RegisterGuest adds a player to an existing town. A name already present
// in the town yields model.ErrDuplicateName, a recoverable condition the
// caller should surface so the player can pick another name. Towns whose
// game has started no longer accept players; a join that slips past this
// check by racing the start is harmless, it simply never receives a role.
func (c *Controller) RegisterGuest(ctx context.Context, code model.TownCode, name string) (*model.Player, error) {
	existing, err := c.store.ListPlayers(ctx, code)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.Role != "" {
			return nil, model.ErrGameAlreadyStarted
		}
	}

	player := &model.Player{
		ID:       model.PlayerID(uuid.NewString()),
		Name:     name,
		TownCode: code,
		JoinedAt: c.clock.Now(),
	}

	if err := c.store.CreateGuestPlayer(ctx, player); err != nil {
		return nil, err
	}

	c.logger.Info("player joined town",
		slog.String("town", string(code)),
		slog.String("player", name))
	return player, nil
}

// ListPlayers returns a town's players in join order
func (c *Controller) ListPlayers(ctx context.Context, code model.TownCode) ([]*model.Player, error) {
	return c.store.ListPlayers(ctx, code)
}

// Interface for dependency injection
type ControllerInterface interface {
	RegisterHost(ctx context.Context, hostName, townName string) (*model.Player, error)
	RegisterGuest(ctx context.Context, code model.TownCode, name string) (*model.Player, error)
	ListPlayers(ctx context.Context, code model.TownCode) ([]*model.Player, error)
}

var _ ControllerInterface = (*Controller)(nil)
