package shinobi

//go:generate mockgen -destination=mock/mock_service.go -package=mockshinobi -source=service.go

import (
	"context"
	"strings"
	"time"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/repositories/players"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rng"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
)

// Repository is an alias for the player repository interface
type Repository = players.Repository

// Service manages persistent player profiles
type Service interface {
	// GetOrCreate returns the profile for a user, enrolling them into the
	// given village on first contact. The bool reports whether a new
	// profile was created.
	GetOrCreate(ctx context.Context, input *GetOrCreateInput) (*shinobi.Player, bool, error)

	// Get retrieves a profile by player ID
	Get(ctx context.Context, playerID string) (*shinobi.Player, error)

	// Save persists a profile
	Save(ctx context.Context, player *shinobi.Player) error

	// GrantExperience awards experience and applies any level ups
	GrantExperience(ctx context.Context, playerID string, amount int) (*shinobi.LevelUpSummary, error)

	// CreditRyo adjusts a player's ryo balance and returns the new total
	CreditRyo(ctx context.Context, playerID string, amount int) (int, error)

	// LearnJutsu adds a library jutsu to a player's known list
	LearnJutsu(ctx context.Context, playerID, jutsuKey string) (*rulebook.Jutsu, error)

	// DiscoverCombination performs a hand-sign sequence and, when it forms
	// a jutsu the player can control, records the discovery and teaches the
	// jutsu.
	DiscoverCombination(ctx context.Context, playerID string, signs []string) (*DiscoveryResult, error)

	// ApplyBattleOutcome settles one participant's side of a concluded
	// battle: reconciles HP and chakra, bumps the win/loss record, awards
	// experience and ryo, and starts the rematch cooldown.
	ApplyBattleOutcome(ctx context.Context, input *BattleOutcomeInput) (*shinobi.LevelUpSummary, error)
}

// GetOrCreateInput contains data for enrolling or fetching a player
type GetOrCreateInput struct {
	PlayerID   string
	Username   string
	VillageKey string
}

// BattleOutcomeInput carries one participant's settlement after a battle
type BattleOutcomeInput struct {
	PlayerID string
	Won      bool
	// FinalHP and FinalChakra are the battle snapshot's closing values,
	// which are authoritative over the stored profile.
	FinalHP     int
	FinalChakra int
	Exp         int
	Ryo         int
	Cooldown    time.Duration
}

// DiscoveryResult reports what a hand-sign combination attempt produced
type DiscoveryResult struct {
	Jutsu *rulebook.Jutsu
	// NewDiscovery is false when the player had already found this
	// combination before.
	NewDiscovery bool
}

// TimeProvider abstracts the clock for cooldown stamps
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider uses the system clock
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// service implements the Service interface
type service struct {
	repository   Repository
	roller       rng.Roller
	timeProvider TimeProvider
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository   Repository   // Required
	Roller       rng.Roller   // Optional, will use default if nil
	TimeProvider TimeProvider // Optional, will use default if nil
}

// NewService creates a new player service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:   cfg.Repository,
		roller:       cfg.Roller,
		timeProvider: cfg.TimeProvider,
	}

	if svc.roller == nil {
		svc.roller = rng.NewRandomRoller()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = &RealTimeProvider{}
	}

	return svc
}

func (s *service) GetOrCreate(ctx context.Context, input *GetOrCreateInput) (*shinobi.Player, bool, error) {
	if input == nil {
		return nil, false, errors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.PlayerID) == "" {
		return nil, false, errors.InvalidArgument("player ID is required")
	}

	player, err := s.repository.Get(ctx, input.PlayerID)
	if err == nil {
		return player, false, nil
	}
	if !errors.IsNotFound(err) {
		return nil, false, errors.Wrap(err, "failed to load player").
			WithMeta("player_id", input.PlayerID)
	}

	if !rulebook.IsVillage(input.VillageKey) {
		return nil, false, errors.InvalidArgumentf("unknown village: %s", input.VillageKey)
	}

	player = shinobi.NewPlayer(input.PlayerID, input.Username, input.VillageKey)
	if err := s.repository.Save(ctx, player); err != nil {
		return nil, false, errors.Wrap(err, "failed to save new player").
			WithMeta("player_id", input.PlayerID)
	}

	return player, true, nil
}

func (s *service) Get(ctx context.Context, playerID string) (*shinobi.Player, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	return s.repository.Get(ctx, playerID)
}

func (s *service) Save(ctx context.Context, player *shinobi.Player) error {
	if player == nil {
		return errors.InvalidArgument("player cannot be nil")
	}

	return s.repository.Save(ctx, player)
}

func (s *service) GrantExperience(ctx context.Context, playerID string, amount int) (*shinobi.LevelUpSummary, error) {
	if amount < 0 {
		return nil, errors.InvalidArgument("experience amount cannot be negative")
	}

	player, err := s.repository.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	summary := player.AddExperience(amount, s.roller)
	if err := s.repository.Save(ctx, player); err != nil {
		return nil, errors.Wrap(err, "failed to save player").
			WithMeta("player_id", playerID)
	}

	return summary, nil
}

func (s *service) CreditRyo(ctx context.Context, playerID string, amount int) (int, error) {
	player, err := s.repository.Get(ctx, playerID)
	if err != nil {
		return 0, err
	}

	if player.Ryo+amount < 0 {
		return player.Ryo, errors.InvalidArgumentf("player %s cannot afford %d ryo", playerID, -amount)
	}

	player.Ryo += amount
	if err := s.repository.Save(ctx, player); err != nil {
		return 0, errors.Wrap(err, "failed to save player").
			WithMeta("player_id", playerID)
	}

	return player.Ryo, nil
}

func (s *service) LearnJutsu(ctx context.Context, playerID, jutsuKey string) (*rulebook.Jutsu, error) {
	jutsu := rulebook.GetJutsu(jutsuKey)
	if jutsu == nil {
		return nil, errors.NotFoundf("unknown jutsu: %s", jutsuKey)
	}

	player, err := s.repository.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.Knows(jutsuKey) {
		return nil, errors.AlreadyExistsf("player already knows %s", jutsu.Name)
	}
	if !player.LearnJutsu(jutsuKey) {
		return nil, errors.InvalidArgumentf("player cannot learn more than %d jutsu", rulebook.MaxKnownJutsu)
	}

	if err := s.repository.Save(ctx, player); err != nil {
		return nil, errors.Wrap(err, "failed to save player").
			WithMeta("player_id", playerID)
	}

	return jutsu, nil
}

func (s *service) DiscoverCombination(ctx context.Context, playerID string, signs []string) (*DiscoveryResult, error) {
	if len(signs) == 0 {
		return nil, errors.InvalidArgument("at least one hand sign is required")
	}
	normalized := make([]string, len(signs))
	for i, sign := range signs {
		normalized[i] = strings.ToLower(strings.TrimSpace(sign))
		if !rulebook.IsHandSign(normalized[i]) {
			return nil, errors.InvalidArgumentf("%q is not a hand sign", signs[i])
		}
	}

	player, err := s.repository.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	jutsu := rulebook.JutsuForSigns(normalized)
	if jutsu == nil {
		return nil, errors.NotFound("the signs form nothing")
	}
	if player.Level < jutsu.LevelRequired {
		return nil, errors.InvalidArgumentf(
			"you feel a surge of chakra, but you are not yet skilled enough to control this jutsu (requires level %d)",
			jutsu.LevelRequired)
	}

	result := &DiscoveryResult{
		Jutsu:        jutsu,
		NewDiscovery: player.DiscoverSigns(strings.Join(normalized, " ")),
	}

	// A repeat attempt still teaches the jutsu if it somehow fell off the
	// known list.
	changed := player.LearnJutsu(jutsu.Key) || result.NewDiscovery
	if changed {
		if err := s.repository.Save(ctx, player); err != nil {
			return nil, errors.Wrap(err, "failed to save discovery").
				WithMeta("player_id", playerID)
		}
	}

	return result, nil
}

func (s *service) ApplyBattleOutcome(ctx context.Context, input *BattleOutcomeInput) (*shinobi.LevelUpSummary, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	player, err := s.repository.Get(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	// The battle snapshot owned these resources for the duration of the
	// fight, so its closing values overwrite whatever the profile held.
	player.CurrentHP = clamp(input.FinalHP, 0, player.MaxHP)
	player.CurrentChakra = clamp(input.FinalChakra, 0, player.MaxChakra)

	if input.Won {
		player.Wins++
	} else {
		player.Losses++
	}

	player.Ryo += input.Ryo
	if input.Cooldown > 0 {
		player.SetCooldown(shinobi.CooldownBattle, input.Cooldown, s.timeProvider.Now())
	}

	// AddExperience last: a level up heals to full, and that should not be
	// clobbered by the snapshot reconciliation above.
	summary := player.AddExperience(input.Exp, s.roller)

	if err := s.repository.Save(ctx, player); err != nil {
		return nil, errors.Wrap(err, "failed to save battle outcome").
			WithMeta("player_id", input.PlayerID)
	}

	return summary, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
