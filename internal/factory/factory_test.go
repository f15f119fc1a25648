package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumbleweed-games/mostwanted/internal/model"
)

func TestNewDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)

	assert.NotNil(t, app.Store)
	assert.NotNil(t, app.Registry)
	assert.NotNil(t, app.Coordinator)
	assert.NotNil(t, app.HubManager)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "postgres"})
	assert.Error(t, err)
}

func TestNewRedisRequiresConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

// TestAppFullFlow runs the whole lifecycle through the wired components:
// found a town, fill it to quorum, start, and read each player's view.
func TestAppFullFlow(t *testing.T) {
	app := NewTestApp()
	ctx := context.Background()

	host, err := app.Registry.RegisterHost(ctx, "Alice", "Dodge")
	require.NoError(t, err)
	require.Equal(t, model.TownCode("Dodge"), host.TownCode)

	for _, name := range []string{"Bob", "Carol", "Dave", "Eve"} {
		app.MockClock.Advance(time.Second)
		_, err := app.Registry.RegisterGuest(ctx, host.TownCode, name)
		require.NoError(t, err)
	}

	require.NoError(t, app.Coordinator.StartGame(ctx, host.TownCode))

	town, err := app.Coordinator.GetTown(ctx, host.TownCode)
	require.NoError(t, err)
	assert.Equal(t, model.TownStateStarted, town.State)

	assert.NotNil(t, town.GetSheriff())
	assert.NotNil(t, town.GetMostWanted())

	for _, name := range []string{"Alice", "Bob", "Carol", "Dave", "Eve"} {
		view, err := app.Coordinator.GetGameView(ctx, host.TownCode, name)
		require.NoError(t, err)
		assert.Equal(t, name, view.Player.Name)
		assert.NotEmpty(t, view.Player.Role)
	}
}

// TestAppDeterministicAssignment pins the mock random so two identical runs
// land the same roles on the same players.
func TestAppDeterministicAssignment(t *testing.T) {
	run := func() map[string]model.Role {
		app := NewTestApp()
		ctx := context.Background()

		host, err := app.Registry.RegisterHost(ctx, "Alice", "Dodge")
		require.NoError(t, err)
		for _, name := range []string{"Bob", "Carol", "Dave", "Eve"} {
			_, err := app.Registry.RegisterGuest(ctx, host.TownCode, name)
			require.NoError(t, err)
		}
		require.NoError(t, app.Coordinator.StartGame(ctx, host.TownCode))

		players, err := app.Store.ListPlayers(ctx, host.TownCode)
		require.NoError(t, err)

		roles := make(map[string]model.Role, len(players))
		for _, p := range players {
			roles[p.Name] = p.Role
		}
		return roles
	}

	assert.Equal(t, run(), run())
}
