package shinobi_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	domain "github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/repositories/players"
	mockrng "github.com/hiddenleafgames/shinobi-bot-discord/internal/rng/mock"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services/shinobi"
)

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type ServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    players.Repository
	roller  *mockrng.ManualMockRoller
	clock   *fixedTime
	service shinobi.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = players.NewInMemoryRepository()
	s.roller = mockrng.NewManualMockRoller()
	s.clock = &fixedTime{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	s.service = shinobi.NewService(&shinobi.ServiceConfig{
		Repository:   s.repo,
		Roller:       s.roller,
		TimeProvider: s.clock,
	})
}

func (s *ServiceTestSuite) enroll(id, username, village string) *domain.Player {
	player, created, err := s.service.GetOrCreate(s.ctx, &shinobi.GetOrCreateInput{
		PlayerID:   id,
		Username:   username,
		VillageKey: village,
	})
	s.Require().NoError(err)
	s.Require().True(created)
	return player
}

func (s *ServiceTestSuite) TestGetOrCreate_NewPlayer() {
	player := s.enroll("user-1", "naruto", "konoha")

	s.Equal("user-1", player.ID)
	s.Equal("konoha", player.Village)
	s.Equal(1, player.Level)
	s.Contains(player.KnownJutsu, "flame_bullet")
}

func (s *ServiceTestSuite) TestGetOrCreate_ExistingPlayer() {
	s.enroll("user-1", "naruto", "konoha")

	// A second call returns the stored profile even with a different village.
	player, created, err := s.service.GetOrCreate(s.ctx, &shinobi.GetOrCreateInput{
		PlayerID:   "user-1",
		Username:   "naruto",
		VillageKey: "suna",
	})
	s.Require().NoError(err)
	s.False(created)
	s.Equal("konoha", player.Village)
}

func (s *ServiceTestSuite) TestGetOrCreate_UnknownVillage() {
	_, _, err := s.service.GetOrCreate(s.ctx, &shinobi.GetOrCreateInput{
		PlayerID:   "user-1",
		Username:   "naruto",
		VillageKey: "atlantis",
	})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *ServiceTestSuite) TestGrantExperience_LevelsUp() {
	s.enroll("user-1", "naruto", "konoha")
	s.roller.SetInts(3, 3, 3, 3, 3, 3)

	summary, err := s.service.GrantExperience(s.ctx, "user-1", 150)
	s.Require().NoError(err)
	s.Equal(1, summary.LevelsUp)
	s.Equal(2, summary.NewLevel)

	player, err := s.service.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(2, player.Level)
	s.Equal(16, player.Stamina)
}

func (s *ServiceTestSuite) TestCreditRyo() {
	s.enroll("user-1", "naruto", "konoha")

	balance, err := s.service.CreditRyo(s.ctx, "user-1", 50)
	s.Require().NoError(err)
	s.Equal(150, balance)

	balance, err = s.service.CreditRyo(s.ctx, "user-1", -150)
	s.Require().NoError(err)
	s.Equal(0, balance)
}

func (s *ServiceTestSuite) TestCreditRyo_InsufficientFunds() {
	s.enroll("user-1", "naruto", "konoha")

	_, err := s.service.CreditRyo(s.ctx, "user-1", -101)
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *ServiceTestSuite) TestLearnJutsu() {
	s.enroll("user-1", "naruto", "konoha")

	jutsu, err := s.service.LearnJutsu(s.ctx, "user-1", "fireball")
	s.Require().NoError(err)
	s.Equal("Fireball Jutsu", jutsu.Name)

	player, err := s.service.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.True(player.Knows("fireball"))
}

func (s *ServiceTestSuite) TestLearnJutsu_AlreadyKnown() {
	s.enroll("user-1", "naruto", "konoha")

	_, err := s.service.LearnJutsu(s.ctx, "user-1", "flame_bullet")
	s.Require().Error(err)
	s.Equal(errors.CodeAlreadyExists, errors.GetCode(err))
}

func (s *ServiceTestSuite) TestLearnJutsu_UnknownJutsu() {
	s.enroll("user-1", "naruto", "konoha")

	_, err := s.service.LearnJutsu(s.ctx, "user-1", "spirit_bomb")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *ServiceTestSuite) TestDiscoverCombination_NewDiscovery() {
	s.enroll("user-1", "naruto", "konoha")

	result, err := s.service.DiscoverCombination(s.ctx, "user-1", []string{"ram", "dog"})
	s.Require().NoError(err)
	s.True(result.NewDiscovery)
	s.Equal("Water Bullet", result.Jutsu.Name)

	player, err := s.service.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.True(player.Knows("water_bullet"))
	s.Contains(player.DiscoveredSigns, "ram dog")
}

func (s *ServiceTestSuite) TestDiscoverCombination_Repeat() {
	s.enroll("user-1", "naruto", "konoha")

	_, err := s.service.DiscoverCombination(s.ctx, "user-1", []string{"ram", "dog"})
	s.Require().NoError(err)

	result, err := s.service.DiscoverCombination(s.ctx, "user-1", []string{"RAM", "Dog"})
	s.Require().NoError(err)
	s.False(result.NewDiscovery)
	s.Equal("Water Bullet", result.Jutsu.Name)
}

func (s *ServiceTestSuite) TestDiscoverCombination_FormsNothing() {
	s.enroll("user-1", "naruto", "konoha")

	_, err := s.service.DiscoverCombination(s.ctx, "user-1", []string{"dragon", "dragon"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	// Signs outside the ten valid ones are rejected before lookup.
	_, err = s.service.DiscoverCombination(s.ctx, "user-1", []string{"tiger", "phoenix"})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *ServiceTestSuite) TestDiscoverCombination_LevelGate() {
	s.enroll("user-1", "naruto", "konoha")

	// Fireball requires level 5; a fresh enrollee is level 1.
	_, err := s.service.DiscoverCombination(s.ctx, "user-1", []string{"tiger", "snake", "bird"})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))

	player, err := s.service.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(player.Knows("fireball"))
	s.Empty(player.DiscoveredSigns)
}

func (s *ServiceTestSuite) TestApplyBattleOutcome_Winner() {
	s.enroll("user-1", "naruto", "konoha")
	s.roller.SetInts(0, 0, 0, 0, 0, 0)

	summary, err := s.service.ApplyBattleOutcome(s.ctx, &shinobi.BattleOutcomeInput{
		PlayerID:    "user-1",
		Won:         true,
		FinalHP:     120,
		FinalChakra: 40,
		Exp:         150,
		Ryo:         75,
		Cooldown:    time.Minute,
	})
	s.Require().NoError(err)
	s.Equal(1, summary.LevelsUp)

	player, err := s.service.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(1, player.Wins)
	s.Equal(0, player.Losses)
	s.Equal(175, player.Ryo)
	// The level up heals the reconciled resources back to full.
	s.Equal(player.MaxHP, player.CurrentHP)
	s.Equal(player.MaxChakra, player.CurrentChakra)

	onCooldown, _ := player.OnCooldown(domain.CooldownBattle, s.clock.now.Add(30*time.Second))
	s.True(onCooldown)
	onCooldown, _ = player.OnCooldown(domain.CooldownBattle, s.clock.now.Add(2*time.Minute))
	s.False(onCooldown)
}

func (s *ServiceTestSuite) TestApplyBattleOutcome_LoserKeepsSnapshotResources() {
	s.enroll("user-2", "gaara", "suna")

	summary, err := s.service.ApplyBattleOutcome(s.ctx, &shinobi.BattleOutcomeInput{
		PlayerID:    "user-2",
		Won:         false,
		FinalHP:     0,
		FinalChakra: 15,
		Exp:         25,
		Ryo:         30,
		Cooldown:    30 * time.Second,
	})
	s.Require().NoError(err)
	s.Equal(0, summary.LevelsUp)

	player, err := s.service.Get(s.ctx, "user-2")
	s.Require().NoError(err)
	s.Equal(1, player.Losses)
	s.Equal(0, player.CurrentHP)
	s.Equal(15, player.CurrentChakra)
	s.Equal(25, player.Exp)
	s.Equal(130, player.Ryo)
}

func (s *ServiceTestSuite) TestApplyBattleOutcome_UnknownPlayer() {
	_, err := s.service.ApplyBattleOutcome(s.ctx, &shinobi.BattleOutcomeInput{
		PlayerID: "ghost",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestNewService_Validation(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for missing repository")
		}
	}()
	shinobi.NewService(&shinobi.ServiceConfig{})
}
