package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tumbleweed-games/mostwanted/internal/dependencies/mocks"
	"github.com/tumbleweed-games/mostwanted/internal/model"
	"github.com/tumbleweed-games/mostwanted/internal/storage/memory"
	"github.com/tumbleweed-games/mostwanted/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

// RegisterHost tests

func (s *ControllerSuite) TestRegisterHostUsesRequestedName() {
	player, err := s.controller.RegisterHost(s.ctx, "Alice", "Dodge")
	s.Require().NoError(err)

	s.Equal(model.TownCode("Dodge"), player.TownCode)
	s.Equal("Alice", player.Name)
	s.NotEmpty(player.ID)
	s.Empty(player.Role)
	s.Equal(s.clock.Now(), player.JoinedAt)
}

func (s *ControllerSuite) TestRegisterHostAppendsSuffixOnCollision() {
	_, err := s.controller.RegisterHost(s.ctx, "Alice", "Dodge")
	s.Require().NoError(err)

	second, err := s.controller.RegisterHost(s.ctx, "Zane", "Dodge")
	s.Require().NoError(err)
	s.Equal(model.TownCode("Dodge1"), second.TownCode)

	third, err := s.controller.RegisterHost(s.ctx, "Yara", "Dodge")
	s.Require().NoError(err)
	s.Equal(model.TownCode("Dodge2"), third.TownCode)
}

func (s *ControllerSuite) TestRegisterHostConcurrentCodesAreUnique() {
	const hosts = 25

	var wg sync.WaitGroup
	codes := make(chan model.TownCode, hosts)

	for i := 0; i < hosts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			player, err := s.controller.RegisterHost(s.ctx, fmt.Sprintf("host%d", i), "Tombstone")
			s.NoError(err)
			codes <- player.TownCode
		}(i)
	}
	wg.Wait()
	close(codes)

	seen := make(map[model.TownCode]bool)
	for code := range codes {
		s.False(seen[code], "code %q allocated twice", code)
		seen[code] = true
	}
	s.Len(seen, hosts)
}

// RegisterGuest tests

func (s *ControllerSuite) TestRegisterGuestJoinsExistingTown() {
	host, _ := s.controller.RegisterHost(s.ctx, "Alice", "Dodge")

	guest, err := s.controller.RegisterGuest(s.ctx, host.TownCode, "Bob")
	s.Require().NoError(err)
	s.Equal(host.TownCode, guest.TownCode)
	s.Empty(guest.Role)
}

func (s *ControllerSuite) TestRegisterGuestDuplicateName() {
	host, _ := s.controller.RegisterHost(s.ctx, "Alice", "Dodge")

	_, err := s.controller.RegisterGuest(s.ctx, host.TownCode, "Alice")
	s.ErrorIs(err, model.ErrDuplicateName)

	// Always the same failure, never a second record
	_, err = s.controller.RegisterGuest(s.ctx, host.TownCode, "Alice")
	s.ErrorIs(err, model.ErrDuplicateName)

	players, _ := s.controller.ListPlayers(s.ctx, host.TownCode)
	s.Len(players, 1)
}

func (s *ControllerSuite) TestRegisterGuestAfterGameStarted() {
	host, _ := s.controller.RegisterHost(s.ctx, "Alice", "Dodge")
	s.Require().NoError(s.storage.SetPlayerRole(s.ctx, host.ID, model.RoleSheriff))

	_, err := s.controller.RegisterGuest(s.ctx, host.TownCode, "Bob")
	s.ErrorIs(err, model.ErrGameAlreadyStarted)

	players, _ := s.controller.ListPlayers(s.ctx, host.TownCode)
	s.Len(players, 1)
}

func (s *ControllerSuite) TestRegisterGuestTownNotFound() {
	_, err := s.controller.RegisterGuest(s.ctx, "Nowhere", "Bob")
	s.ErrorIs(err, model.ErrTownNotFound)
}

// ListPlayers tests

func (s *ControllerSuite) TestListPlayersJoinOrder() {
	host, _ := s.controller.RegisterHost(s.ctx, "Alice", "Dodge")
	for _, name := range []string{"Bob", "Carol", "Dave", "Eve"} {
		s.clock.Advance(time.Second)
		_, err := s.controller.RegisterGuest(s.ctx, host.TownCode, name)
		s.Require().NoError(err)
	}

	players, err := s.controller.ListPlayers(s.ctx, host.TownCode)
	s.Require().NoError(err)
	s.Require().Len(players, 5)

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	s.Equal([]string{"Alice", "Bob", "Carol", "Dave", "Eve"}, names)
}
