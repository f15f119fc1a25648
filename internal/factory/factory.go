package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tumbleweed-games/mostwanted/internal/dependencies/clock"
	"github.com/tumbleweed-games/mostwanted/internal/dependencies/random"
	"github.com/tumbleweed-games/mostwanted/internal/services/registry"
	"github.com/tumbleweed-games/mostwanted/internal/services/roles"
	"github.com/tumbleweed-games/mostwanted/internal/services/session"
	"github.com/tumbleweed-games/mostwanted/internal/sse"
	"github.com/tumbleweed-games/mostwanted/internal/storage"
	"github.com/tumbleweed-games/mostwanted/internal/storage/memory"
	redisstorage "github.com/tumbleweed-games/mostwanted/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.PlayerStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Registry    *registry.Controller
	Assigner    *roles.Assigner
	Coordinator *session.Coordinator
	HubManager  *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.PlayerStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.PlayerStore, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	assigner := roles.NewAssigner(rnd)

	return &App{
		Store:       store,
		Clock:       clk,
		Random:      rnd,
		Registry:    registry.NewController(store, clk, logger),
		Assigner:    assigner,
		Coordinator: session.NewCoordinator(store, assigner, broadcaster, logger),
		HubManager:  hubManager,
	}
}
