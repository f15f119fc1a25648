package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/tumbleweed-games/mostwanted/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.TownTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newPlayer(id, name, code string) *model.Player {
	return &model.Player{
		ID:       model.PlayerID(id),
		Name:     name,
		TownCode: model.TownCode(code),
		JoinedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestCreateHostPlayer() {
	err := s.storage.CreateHostPlayer(s.ctx, s.newPlayer("p1", "Alice", "Dodge"))
	s.Require().NoError(err)

	exists, err := s.storage.TownExists(s.ctx, "Dodge")
	s.Require().NoError(err)
	s.True(exists)

	player, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)
	s.Equal(model.TownCode("Dodge"), player.TownCode)
}

func (s *StorageSuite) TestCreateHostPlayerCodeTaken() {
	s.Require().NoError(s.storage.CreateHostPlayer(s.ctx, s.newPlayer("p1", "Alice", "Dodge")))

	err := s.storage.CreateHostPlayer(s.ctx, s.newPlayer("p2", "Zane", "Dodge"))
	s.ErrorIs(err, model.ErrTownCodeTaken)
}

func (s *StorageSuite) TestCreateGuestPlayerDuplicateName() {
	s.Require().NoError(s.storage.CreateHostPlayer(s.ctx, s.newPlayer("p1", "Alice", "Dodge")))

	err := s.storage.CreateGuestPlayer(s.ctx, s.newPlayer("p2", "Alice", "Dodge"))
	s.ErrorIs(err, model.ErrDuplicateName)
}

func (s *StorageSuite) TestCreateGuestPlayerTownNotFound() {
	err := s.storage.CreateGuestPlayer(s.ctx, s.newPlayer("p1", "Bob", "Nowhere"))
	s.ErrorIs(err, model.ErrTownNotFound)
}

func (s *StorageSuite) TestListPlayersJoinOrder() {
	s.Require().NoError(s.storage.CreateHostPlayer(s.ctx, s.newPlayer("p1", "Alice", "Dodge")))
	s.Require().NoError(s.storage.CreateGuestPlayer(s.ctx, s.newPlayer("p2", "Bob", "Dodge")))
	s.Require().NoError(s.storage.CreateGuestPlayer(s.ctx, s.newPlayer("p3", "Carol", "Dodge")))

	players, err := s.storage.ListPlayers(s.ctx, "Dodge")
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("Alice", players[0].Name)
	s.Equal("Bob", players[1].Name)
	s.Equal("Carol", players[2].Name)
}

func (s *StorageSuite) TestListPlayersEmptyTown() {
	players, err := s.storage.ListPlayers(s.ctx, "Nowhere")
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestFindPlayerByName() {
	s.Require().NoError(s.storage.CreateHostPlayer(s.ctx, s.newPlayer("p1", "Alice", "Dodge")))

	player, err := s.storage.FindPlayerByName(s.ctx, "Dodge", "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), player.ID)

	_, err = s.storage.FindPlayerByName(s.ctx, "Dodge", "Bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSetPlayerRole() {
	s.Require().NoError(s.storage.CreateHostPlayer(s.ctx, s.newPlayer("p1", "Alice", "Dodge")))

	err := s.storage.SetPlayerRole(s.ctx, "p1", model.RoleSheriff)
	s.Require().NoError(err)

	player, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(model.RoleSheriff, player.Role)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestTownExpires() {
	s.Require().NoError(s.storage.CreateHostPlayer(s.ctx, s.newPlayer("p1", "Alice", "Dodge")))

	s.mini.FastForward(2 * time.Hour)

	exists, err := s.storage.TownExists(s.ctx, "Dodge")
	s.Require().NoError(err)
	s.False(exists)

	// The code becomes reallocatable once the town expires
	err = s.storage.CreateHostPlayer(s.ctx, s.newPlayer("p2", "Zane", "Dodge"))
	s.NoError(err)
}
