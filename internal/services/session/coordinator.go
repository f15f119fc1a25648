package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tumbleweed-games/mostwanted/internal/model"
	"github.com/tumbleweed-games/mostwanted/internal/services/roles"
	"github.com/tumbleweed-games/mostwanted/internal/storage"
)

// WaitingMessage is shown on the town listing while below quorum
const WaitingMessage = "Waiting for more players to join (minimum 5)."

// Notifier receives session lifecycle events for fan-out to connected
// clients
type Notifier interface {
	GameStarted(code model.TownCode)
}

// GameView is the per-player view of a started game
type GameView struct {
	Player     *model.Player
	Sheriff    *model.Player
	MostWanted *model.Player
}

// Coordinator drives the town lifecycle from waiting to started: it gates
// the start on quorum, assigns roles, and notifies the town's connections.
type Coordinator struct {
	store    storage.PlayerStore
	assigner *roles.Assigner
	notifier Notifier
	logger   *slog.Logger
}

// NewCoordinator creates a new session Coordinator
func NewCoordinator(store storage.PlayerStore, assigner *roles.Assigner, notifier Notifier, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		assigner: assigner,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "session")),
	}
}

// GetTown returns the derived town view: its players in join order and its
// lifecycle state. Roles are written all-or-nothing at start, so any
// assigned role marks the town started; started is terminal, and a player
// record without a role in a started town is a join that raced the start,
// not a regression to waiting.
func (c *Coordinator) GetTown(ctx context.Context, code model.TownCode) (*model.Town, error) {
	exists, err := c.store.TownExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrTownNotFound
	}

	players, err := c.store.ListPlayers(ctx, code)
	if err != nil {
		return nil, err
	}

	state := model.TownStateWaiting
	if anyAssigned(players) {
		state = model.TownStateStarted
	}

	return &model.Town{
		Code:    code,
		State:   state,
		Players: players,
	}, nil
}

// StartGame transitions a town from waiting to started. The player list is
// snapshotted once; the quorum guard and the role plan both apply to that
// snapshot, so a join racing the start neither blocks it nor receives a
// role (best-effort, the guard is not re-evaluated after the writes begin).
//
// The plan is validated before any role is persisted, so a defective plan
// writes nothing.
func (c *Coordinator) StartGame(ctx context.Context, code model.TownCode) error {
	town, err := c.GetTown(ctx, code)
	if err != nil {
		return err
	}
	if town.State == model.TownStateStarted {
		return model.ErrGameAlreadyStarted
	}

	players := town.Players
	if len(players) < model.MinPlayers || len(players) > model.MaxPlayers {
		return model.ErrQuorumNotMet
	}

	plan, err := c.assigner.Assign(code, len(players))
	if err != nil {
		return fmt.Errorf("building role plan: %w", err)
	}
	if err := roles.Validate(plan); err != nil {
		// Should not happen with a correct assigner; nothing was written
		c.logger.Error("role plan failed validation",
			slog.String("town", string(code)),
			slog.Any("error", err))
		return err
	}

	// Each write is independent and order-insensitive, but all must land
	for i, player := range players {
		if err := c.store.SetPlayerRole(ctx, player.ID, plan[i]); err != nil {
			return fmt.Errorf("persisting role for %s: %w", player.Name, err)
		}
	}

	if err := c.verifyAssignment(ctx, code); err != nil {
		return err
	}

	c.notifier.GameStarted(code)
	c.logger.Info("game started",
		slog.String("town", string(code)),
		slog.Int("players", len(players)))
	return nil
}

// verifyAssignment re-scans the town after the role writes and checks the
// role-exclusivity invariants against what the store now holds. A failure
// here is a defect signal, not an expected condition.
func (c *Coordinator) verifyAssignment(ctx context.Context, code model.TownCode) error {
	players, err := c.store.ListPlayers(ctx, code)
	if err != nil {
		return err
	}

	sheriffs, outlaws := 0, 0
	for _, p := range players {
		if p.Role == model.RoleSheriff {
			sheriffs++
		}
		if p.Role.IsMostWanted() {
			outlaws++
		}
	}
	if sheriffs != 1 || outlaws != 1 {
		c.logger.Error("role assignment invariant violated after persist",
			slog.String("town", string(code)),
			slog.Int("sheriffs", sheriffs),
			slog.Int("most_wanted", outlaws))
		return model.ErrRoleAssignment
	}
	return nil
}

// GetGameView returns the started-game view for one player: their own
// record plus the town's Sheriff and Most Wanted. Valid only once the town
// has started; any missing lookup fails the request.
func (c *Coordinator) GetGameView(ctx context.Context, code model.TownCode, playerName string) (*GameView, error) {
	town, err := c.GetTown(ctx, code)
	if err != nil {
		return nil, err
	}

	view := &GameView{
		Player:     town.GetPlayer(playerName),
		Sheriff:    town.GetSheriff(),
		MostWanted: town.GetMostWanted(),
	}
	if view.Player == nil || view.Sheriff == nil || view.MostWanted == nil {
		return nil, model.ErrPlayerNotFound
	}
	return view, nil
}

func anyAssigned(players []*model.Player) bool {
	for _, p := range players {
		if p.Role != "" {
			return true
		}
	}
	return false
}

// Interface for dependency injection
type CoordinatorInterface interface {
	GetTown(ctx context.Context, code model.TownCode) (*model.Town, error)
	StartGame(ctx context.Context, code model.TownCode) error
	GetGameView(ctx context.Context, code model.TownCode, playerName string) (*GameView, error)
}

var _ CoordinatorInterface = (*Coordinator)(nil)
