package battle

//go:generate mockgen -destination=mock/mock_service.go -package=mockbattle -source=service.go

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
	shinobidomain "github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/repositories/battles"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/repositories/histories"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rng"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
	shinobisvc "github.com/hiddenleafgames/shinobi-bot-discord/internal/services/shinobi"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/uuid"
)

// Repository is an alias for the battle repository interface
type Repository = battles.Repository

const (
	// statusEffectTurns is how many of the caster's turns a status effect
	// stays recorded before it expires.
	statusEffectTurns = 3

	winnerCooldown = 60 * time.Second
	loserCooldown  = 30 * time.Second
)

// Service runs the battle lifecycle: matchmaking, turn orchestration and
// conclusion settlement.
type Service interface {
	// Challenge starts a battle between two eligible players, locking both
	// into it.
	Challenge(ctx context.Context, input *ChallengeInput) (*combat.Battle, error)

	// SubmitTurn executes one turn for the acting player. The returned
	// result carries a non-nil Conclusion when the turn ended the battle.
	SubmitTurn(ctx context.Context, input *SubmitTurnInput) (*TurnResult, error)

	// Flee concedes the battle; the opponent wins.
	Flee(ctx context.Context, playerID string) (*ConclusionResult, error)

	// GetBattleFor loads the ongoing battle a player is locked into.
	GetBattleFor(ctx context.Context, playerID string) (*combat.Battle, error)

	// BindMessage records where the transport layer renders the battle.
	BindMessage(ctx context.Context, battleID, channelID, messageID string) error

	// History lists a player's most recent concluded battles.
	History(ctx context.Context, playerID string, limit int) ([]*combat.BattleRecord, error)
}

// ChallengeInput contains data for starting a battle
type ChallengeInput struct {
	ChallengerID string
	OpponentID   string
	ChannelID    string
}

// SubmitTurnInput contains data for executing a turn
type SubmitTurnInput struct {
	PlayerID string
	JutsuKey string
}

// TurnResult is the structured outcome of one resolved turn
type TurnResult struct {
	Battle *combat.Battle
	Jutsu  *rulebook.Jutsu
	Damage *combat.DamageResult

	// ExpiredEffects lists the actor's status effects that wore off at the
	// start of this turn.
	ExpiredEffects []rulebook.EffectTag

	// Summary is the human-readable transcript line for this turn.
	Summary string

	// Conclusion is non-nil when this turn decided the battle.
	Conclusion *ConclusionResult
}

// ConclusionResult is the settlement of a finished battle
type ConclusionResult struct {
	BattleID string
	WinnerID string
	LoserID  string
	Fled     bool

	WinnerExp int
	WinnerRyo int

	WinnerLevelUp *shinobidomain.LevelUpSummary
	LoserLevelUp  *shinobidomain.LevelUpSummary

	Record *combat.BattleRecord
}

// TimeProvider abstracts the clock for turn timestamps
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
	repository    Repository
	playerService shinobisvc.Service
	historyRepo   histories.Repository
	uuidGenerator uuid.Generator
	roller        rng.Roller
	timeProvider  TimeProvider
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository           // Required
	PlayerService shinobisvc.Service   // Required
	HistoryRepo   histories.Repository // Required
	UUIDGenerator uuid.Generator       // Optional, will use default if nil
	Roller        rng.Roller           // Optional, will use default if nil
	TimeProvider  TimeProvider         // Optional, will use default if nil
}

// NewService creates a new battle service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.PlayerService == nil {
		panic("player service is required")
	}
	if cfg.HistoryRepo == nil {
		panic("history repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		playerService: cfg.PlayerService,
		historyRepo:   cfg.HistoryRepo,
		uuidGenerator: cfg.UUIDGenerator,
		roller:        cfg.Roller,
		timeProvider:  cfg.TimeProvider,
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.roller == nil {
		svc.roller = rng.NewRandomRoller()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = &RealTimeProvider{}
	}

	return svc
}

func (s *service) Challenge(ctx context.Context, input *ChallengeInput) (*combat.Battle, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.ChallengerID) == "" || strings.TrimSpace(input.OpponentID) == "" {
		return nil, errors.InvalidArgument("both player IDs are required")
	}
	if input.ChallengerID == input.OpponentID {
		return nil, errors.InvalidArgument("you cannot challenge yourself")
	}

	challenger, err := s.playerService.Get(ctx, input.ChallengerID)
	if err != nil {
		return nil, err
	}
	opponent, err := s.playerService.Get(ctx, input.OpponentID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.InvalidArgument("your opponent has not enrolled in a village yet")
		}
		return nil, err
	}

	now := s.timeProvider.Now()
	if err := checkEligibility(challenger, now, "you"); err != nil {
		return nil, err
	}
	if err := checkEligibility(opponent, now, opponent.Username); err != nil {
		return nil, err
	}

	battleID := s.uuidGenerator.New()

	// The lock acquisition is the busy check: it fails atomically, with no
	// partial locks, when either player is already committed elsewhere.
	if err := s.repository.AcquireLocks(ctx, battleID, input.ChallengerID, input.OpponentID); err != nil {
		return nil, err
	}

	battle := combat.NewBattle(battleID, challenger, opponent, now)
	battle.ChannelID = input.ChannelID

	if err := s.repository.SaveState(ctx, battle); err != nil {
		if relErr := s.repository.ReleaseLocks(ctx, battleID, input.ChallengerID, input.OpponentID); relErr != nil {
			log.Printf("failed to release locks for unsaved battle %s: %v", battleID, relErr)
		}
		return nil, errors.Wrap(err, "failed to save new battle").
			WithMeta("battle_id", battleID)
	}

	return battle, nil
}

// checkEligibility rejects players who cannot enter a battle right now.
func checkEligibility(player *shinobidomain.Player, now time.Time, who string) error {
	if player.CurrentHP <= 0 {
		return errors.InvalidArgumentf("%s must heal up before battling", who)
	}
	if onCooldown, remaining := player.OnCooldown(shinobidomain.CooldownBattle, now); onCooldown {
		return errors.InvalidArgumentf("%s must rest %s before battling again", who, remaining.Round(time.Second))
	}
	if player.CurrentMission != "" {
		return errors.InvalidArgumentf("%s cannot battle while on a mission", who)
	}
	return nil
}

func (s *service) SubmitTurn(ctx context.Context, input *SubmitTurnInput) (*TurnResult, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.PlayerID) == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	battle, err := s.loadBattleFor(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	if battle.TurnHolder != input.PlayerID {
		return nil, errors.NotYourTurn("it is not your turn")
	}

	actor := battle.SnapshotFor(input.PlayerID)
	defender := battle.OpponentSnapshotFor(input.PlayerID)

	// Status counters wear down at the start of each turn their owner
	// takes. Nothing is persisted yet, so a rejected turn does not consume
	// effect duration.
	expired := actor.TickEffects()

	jutsu := rulebook.GetJutsu(input.JutsuKey)
	if jutsu == nil {
		return nil, errors.NotFoundf("unknown jutsu: %s", input.JutsuKey)
	}
	if !actor.Knows(jutsu.Key) {
		return nil, errors.NotLearnedf("you have not learned %s", jutsu.Name)
	}
	if actor.CurrentChakra < jutsu.ChakraCost {
		return nil, errors.InsufficientChakraf("%s costs %d chakra, you have %d",
			jutsu.Name, jutsu.ChakraCost, actor.CurrentChakra)
	}

	// During the battle the snapshot is the sole chakra authority; the
	// profile store only hears about it at conclusion.
	if err := battle.ApplyResourceDelta(actor.ID, combat.FieldChakra, actor.CurrentChakra-jutsu.ChakraCost); err != nil {
		return nil, errors.Wrap(err, "failed to deduct chakra")
	}

	damage, err := combat.Resolve(actor, defender, jutsu, s.roller)
	if err != nil {
		return nil, err
	}

	summary := s.applyOutcome(battle, actor, defender, jutsu, damage)

	for _, tag := range expired {
		battle.AppendTranscript(fmt.Sprintf("%s's %s wore off.", actor.Username, tag))
	}
	battle.AppendTranscript(summary)

	result := &TurnResult{
		Battle:         battle,
		Jutsu:          jutsu,
		Damage:         damage,
		ExpiredEffects: expired,
		Summary:        summary,
	}

	// At most one winner per turn: the defender falling takes precedence
	// over any self-inflicted knockout.
	var winnerID string
	switch {
	case defender.CurrentHP <= 0:
		winnerID = actor.ID
	case actor.CurrentHP <= 0:
		winnerID = defender.ID
	}

	if winnerID != "" {
		conclusion, err := s.conclude(ctx, battle, winnerID, false)
		if err != nil {
			return nil, err
		}
		result.Conclusion = conclusion
		return result, nil
	}

	battle.AdvanceTurn(s.timeProvider.Now())
	if err := s.repository.SaveState(ctx, battle); err != nil {
		return nil, errors.Wrap(err, "failed to persist turn").
			WithMeta("battle_id", battle.ID)
	}

	return result, nil
}

// applyOutcome mutates the battle per the resolved damage and returns the
// transcript line.
func (s *service) applyOutcome(battle *combat.Battle, actor, defender *combat.CombatantSnapshot, jutsu *rulebook.Jutsu, damage *combat.DamageResult) string {
	switch {
	case damage.Amount < 0:
		healed := -damage.Amount
		_ = battle.ApplyResourceDelta(actor.ID, combat.FieldHP, actor.CurrentHP+healed)
		return fmt.Sprintf("%s used %s and recovered %d HP!", actor.Username, jutsu.Name, healed)

	case damage.Effect.IsStatus():
		actor.ApplyEffect(damage.Effect, statusEffectTurns)
		return fmt.Sprintf("%s used %s and gained %s!", actor.Username, jutsu.Name, damage.Effect)

	default:
		_ = battle.ApplyResourceDelta(defender.ID, combat.FieldHP, defender.CurrentHP-damage.Amount)
		line := fmt.Sprintf("%s used %s for %d damage!", actor.Username, jutsu.Name, damage.Amount)
		if damage.IsCritical {
			line += " Critical hit!"
		}
		if damage.IsElemental {
			line += " It's super effective!"
		}
		return line
	}
}

func (s *service) Flee(ctx context.Context, playerID string) (*ConclusionResult, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	battle, err := s.loadBattleFor(ctx, playerID)
	if err != nil {
		return nil, err
	}

	actor := battle.SnapshotFor(playerID)
	battle.AppendTranscript(fmt.Sprintf("%s fled from the battle!", actor.Username))

	return s.conclude(ctx, battle, battle.OtherID(playerID), true)
}

func (s *service) GetBattleFor(ctx context.Context, playerID string) (*combat.Battle, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	return s.loadBattleFor(ctx, playerID)
}

func (s *service) BindMessage(ctx context.Context, battleID, channelID, messageID string) error {
	battle, err := s.repository.GetState(ctx, battleID)
	if err != nil {
		return err
	}

	battle.ChannelID = channelID
	battle.MessageID = messageID

	return s.repository.SaveState(ctx, battle)
}

func (s *service) History(ctx context.Context, playerID string, limit int) ([]*combat.BattleRecord, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	return s.historyRepo.ListRecent(ctx, playerID, limit)
}

// loadBattleFor resolves a player's ongoing battle. A lock pointing at a
// missing or incompatible state blob is an authoritative signal the battle
// is over: the locks are torn down and the caller sees an expired error.
func (s *service) loadBattleFor(ctx context.Context, playerID string) (*combat.Battle, error) {
	battleID, err := s.repository.BattleIDFor(ctx, playerID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("you are not in a battle")
		}
		return nil, err
	}

	battle, err := s.repository.GetState(ctx, battleID)
	if err == nil {
		return battle, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	log.Printf("battle %s has a lock for player %s but no state; force-concluding", battleID, playerID)

	opponentID, opErr := s.repository.OpponentOf(ctx, playerID)
	if opErr != nil && !errors.IsNotFound(opErr) {
		return nil, opErr
	}
	if relErr := s.repository.ReleaseLocks(ctx, battleID, playerID, opponentID); relErr != nil {
		return nil, relErr
	}

	return nil, errors.Expired("the battle has expired with no winner")
}

// conclude settles a finished battle. Lock release comes first so a reward
// or persistence failure can never leave a player locked out of future
// battles.
func (s *service) conclude(ctx context.Context, battle *combat.Battle, winnerID string, fled bool) (*ConclusionResult, error) {
	loserID := battle.OtherID(winnerID)
	winner := battle.SnapshotFor(winnerID)
	loser := battle.SnapshotFor(loserID)

	battle.AppendTranscript(fmt.Sprintf("%s wins the battle!", winner.Username))

	if err := s.repository.ReleaseLocks(ctx, battle.ID, battle.ChallengerID, battle.OpponentID); err != nil {
		return nil, errors.Wrap(err, "failed to release battle locks").
			WithMeta("battle_id", battle.ID)
	}

	exp := winnerExperience(winner.Level, loser.Level)
	ryo := winnerRyo(winner.Level, loser.Level)

	result := &ConclusionResult{
		BattleID:  battle.ID,
		WinnerID:  winnerID,
		LoserID:   loserID,
		Fled:      fled,
		WinnerExp: exp,
		WinnerRyo: ryo,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.playerService.ApplyBattleOutcome(gctx, &shinobisvc.BattleOutcomeInput{
			PlayerID:    winnerID,
			Won:         true,
			FinalHP:     winner.CurrentHP,
			FinalChakra: winner.CurrentChakra,
			Exp:         exp,
			Ryo:         ryo,
			Cooldown:    winnerCooldown,
		})
		if err != nil {
			return err
		}
		result.WinnerLevelUp = summary
		return nil
	})
	g.Go(func() error {
		summary, err := s.playerService.ApplyBattleOutcome(gctx, &shinobisvc.BattleOutcomeInput{
			PlayerID:    loserID,
			Won:         false,
			FinalHP:     loser.CurrentHP,
			FinalChakra: loser.CurrentChakra,
			Cooldown:    loserCooldown,
		})
		if err != nil {
			return err
		}
		result.LoserLevelUp = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "failed to settle battle rewards").
			WithMeta("battle_id", battle.ID)
	}

	record := &combat.BattleRecord{
		ID:           s.uuidGenerator.New(),
		BattleID:     battle.ID,
		ChallengerID: battle.ChallengerID,
		OpponentID:   battle.OpponentID,
		WinnerID:     winnerID,
		TurnCount:    battle.TurnCount,
		Fled:         fled,
		ExpAwarded:   exp,
		RyoAwarded:   ryo,
		Transcript:   battle.Transcript,
		ConcludedAt:  s.timeProvider.Now(),
	}
	if err := s.historyRepo.Add(ctx, record); err != nil {
		// History is best effort; the battle is already settled.
		log.Printf("failed to record battle history for %s: %v", battle.ID, err)
	}
	result.Record = record

	return result, nil
}

// winnerExperience scales the award with the loser's level and the level
// gap, never below 10.
func winnerExperience(winnerLevel, loserLevel int) int {
	exp := loserLevel*10 + 25 + (loserLevel-winnerLevel)*5
	if exp < 10 {
		return 10
	}
	return exp
}

// winnerRyo scales the purse the same way, never below 20.
func winnerRyo(winnerLevel, loserLevel int) int {
	ryo := loserLevel*5 + 50 + (loserLevel-winnerLevel)*10
	if ryo < 20 {
		return 20
	}
	return ryo
}
