package memory

import (
	"context"
	"sync"

	"github.com/tumbleweed-games/mostwanted/internal/model"
	"github.com/tumbleweed-games/mostwanted/internal/storage"
)

// Storage is an in-memory implementation of the player store. A single
// mutex covers every operation, which makes the conditional creates
// trivially atomic.
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	// towns preserves join order per town code
	towns map[model.TownCode][]model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
		towns:   make(map[model.TownCode][]model.PlayerID),
	}
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

func (s *Storage) CreateHostPlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.towns[player.TownCode]; ok {
		return model.ErrTownCodeTaken
	}

	p := *player
	s.players[p.ID] = &p
	s.towns[p.TownCode] = []model.PlayerID{p.ID}
	return nil
}

func (s *Storage) CreateGuestPlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, ok := s.towns[player.TownCode]
	if !ok {
		return model.ErrTownNotFound
	}
	for _, id := range ids {
		if s.players[id].Name == player.Name {
			return model.ErrDuplicateName
		}
	}

	p := *player
	s.players[p.ID] = &p
	s.towns[p.TownCode] = append(ids, p.ID)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) FindPlayerByName(ctx context.Context, code model.TownCode, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.towns[code] {
		if s.players[id].Name == name {
			p := *s.players[id]
			return &p, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (s *Storage) ListPlayers(ctx context.Context, code model.TownCode) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.towns[code]
	players := make([]*model.Player, 0, len(ids))
	for _, id := range ids {
		p := *s.players[id]
		players = append(players, &p)
	}
	return players, nil
}

func (s *Storage) SetPlayerRole(ctx context.Context, id model.PlayerID, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.Role = role
	return nil
}

func (s *Storage) TownExists(ctx context.Context, code model.TownCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.towns[code]
	return ok, nil
}
