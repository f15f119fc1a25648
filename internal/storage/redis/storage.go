package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tumbleweed-games/mostwanted/internal/model"
	"github.com/tumbleweed-games/mostwanted/internal/storage"
)

// Storage is a Redis-backed implementation of the player store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

func (s *Storage) CreateHostPlayer(ctx context.Context, player *model.Player) error {
	// SETNX on the town marker is the atomic claim on the code; losers
	// of a race see the marker and retry with another code.
	claimed, err := s.client.SetNX(ctx, townKey(player.TownCode), "1", s.cfg.TownTTL).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrTownCodeTaken
	}

	return s.writePlayer(ctx, player)
}

func (s *Storage) CreateGuestPlayer(ctx context.Context, player *model.Player) error {
	exists, err := s.TownExists(ctx, player.TownCode)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrTownNotFound
	}

	// SADD on the name index is the atomic uniqueness decision
	added, err := s.client.SAdd(ctx, townNamesKey(player.TownCode), player.Name).Result()
	if err != nil {
		return err
	}
	if added == 0 {
		return model.ErrDuplicateName
	}

	return s.writePlayer(ctx, player)
}

// writePlayer persists the player record and appends it to the town's
// join-order list, refreshing the town TTL
func (s *Storage) writePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, s.cfg.TownTTL)
	pipe.RPush(ctx, townPlayersKey(player.TownCode), string(player.ID))
	pipe.SAdd(ctx, townNamesKey(player.TownCode), player.Name)
	pipe.Expire(ctx, townKey(player.TownCode), s.cfg.TownTTL)
	pipe.Expire(ctx, townPlayersKey(player.TownCode), s.cfg.TownTTL)
	pipe.Expire(ctx, townNamesKey(player.TownCode), s.cfg.TownTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) FindPlayerByName(ctx context.Context, code model.TownCode, name string) (*model.Player, error) {
	players, err := s.ListPlayers(ctx, code)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (s *Storage) ListPlayers(ctx context.Context, code model.TownCode) ([]*model.Player, error) {
	ids, err := s.client.LRange(ctx, townPlayersKey(code), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Player record may have expired
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}

	return players, nil
}

func (s *Storage) SetPlayerRole(ctx context.Context, id model.PlayerID, role model.Role) error {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return err
	}

	player.Role = role
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, playerKey(id), data, s.cfg.TownTTL).Err()
}

func (s *Storage) TownExists(ctx context.Context, code model.TownCode) (bool, error) {
	exists, err := s.client.Exists(ctx, townKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
