package battles

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
)

type battleRecord struct {
	challengerID string
	opponentID   string
	state        []byte
	expiresAt    time.Time
}

type inMemoryRepo struct {
	mu sync.RWMutex
	// byID holds the battle records; byPlayer maps each locked player to
	// the battle holding the lock.
	byID     map[string]*battleRecord
	byPlayer map[string]string
	ttl      time.Duration
	clock    func() time.Time
}

// InMemoryConfig holds the options for the in-memory battle repository.
type InMemoryConfig struct {
	// TTL bounds how long an idle battle survives. Zero means no expiry.
	TTL time.Duration
	// Clock overrides the time source. Defaults to time.Now.
	Clock func() time.Time
}

// NewInMemoryRepository creates an in-memory battle repository, suitable for
// tests and for running without Redis.
func NewInMemoryRepository(cfg *InMemoryConfig) Repository {
	if cfg == nil {
		cfg = &InMemoryConfig{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &inMemoryRepo{
		byID:     make(map[string]*battleRecord),
		byPlayer: make(map[string]string),
		ttl:      cfg.TTL,
		clock:    clock,
	}
}

// expired reports whether a record's idle window has lapsed. Callers hold
// at least a read lock.
func (r *inMemoryRepo) expired(rec *battleRecord) bool {
	return r.ttl > 0 && r.clock().After(rec.expiresAt)
}

// purgeLocked removes a battle and its player locks. Callers hold the write
// lock.
func (r *inMemoryRepo) purgeLocked(battleID string) {
	rec, ok := r.byID[battleID]
	if !ok {
		return
	}
	if r.byPlayer[rec.challengerID] == battleID {
		delete(r.byPlayer, rec.challengerID)
	}
	if r.byPlayer[rec.opponentID] == battleID {
		delete(r.byPlayer, rec.opponentID)
	}
	delete(r.byID, battleID)
}

// lookupLocked resolves a player's live battle, purging it when expired.
// Callers hold the write lock.
func (r *inMemoryRepo) lookupLocked(playerID string) (*battleRecord, string, bool) {
	battleID, ok := r.byPlayer[playerID]
	if !ok {
		return nil, "", false
	}
	rec, ok := r.byID[battleID]
	if !ok {
		delete(r.byPlayer, playerID)
		return nil, "", false
	}
	if r.expired(rec) {
		r.purgeLocked(battleID)
		return nil, "", false
	}
	return rec, battleID, true
}

func (r *inMemoryRepo) AcquireLocks(_ context.Context, battleID, challengerID, opponentID string) error {
	if battleID == "" {
		return errors.InvalidArgument("battle id is required")
	}
	if challengerID == "" || opponentID == "" {
		return errors.InvalidArgument("both player ids are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, _, ok := r.lookupLocked(challengerID); ok {
		return errors.Busyf("player %s is already in a battle", challengerID)
	}
	if _, _, ok := r.lookupLocked(opponentID); ok {
		return errors.Busyf("player %s is already in a battle", opponentID)
	}

	r.byID[battleID] = &battleRecord{
		challengerID: challengerID,
		opponentID:   opponentID,
		expiresAt:    r.clock().Add(r.ttl),
	}
	r.byPlayer[challengerID] = battleID
	r.byPlayer[opponentID] = battleID

	return nil
}

func (r *inMemoryRepo) ReleaseLocks(_ context.Context, battleID, challengerID, opponentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.purgeLocked(battleID)
	if r.byPlayer[challengerID] == battleID {
		delete(r.byPlayer, challengerID)
	}
	if r.byPlayer[opponentID] == battleID {
		delete(r.byPlayer, opponentID)
	}

	return nil
}

func (r *inMemoryRepo) BattleIDFor(_ context.Context, playerID string) (string, error) {
	if playerID == "" {
		return "", errors.InvalidArgument("player id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, battleID, ok := r.lookupLocked(playerID)
	if !ok {
		return "", errors.NotFoundf("player %s is not in a battle", playerID)
	}

	return battleID, nil
}

func (r *inMemoryRepo) OpponentOf(_ context.Context, playerID string) (string, error) {
	if playerID == "" {
		return "", errors.InvalidArgument("player id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, _, ok := r.lookupLocked(playerID)
	if !ok {
		return "", errors.NotFoundf("player %s is not in a battle", playerID)
	}

	if rec.challengerID == playerID {
		return rec.opponentID, nil
	}
	return rec.challengerID, nil
}

func (r *inMemoryRepo) GetState(_ context.Context, battleID string) (*combat.Battle, error) {
	if battleID == "" {
		return nil, errors.InvalidArgument("battle id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[battleID]
	if !ok {
		return nil, errors.NotFoundf("battle %s not found", battleID)
	}
	if r.expired(rec) {
		r.purgeLocked(battleID)
		return nil, errors.NotFoundf("battle %s not found", battleID)
	}
	if rec.state == nil {
		return nil, errors.NotFoundf("battle %s not found", battleID)
	}

	var battle combat.Battle
	if err := json.Unmarshal(rec.state, &battle); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal battle state")
	}

	if battle.SchemaVersion != combat.SchemaVersion {
		return nil, errors.NotFoundf("battle %s has incompatible schema version %d", battleID, battle.SchemaVersion)
	}

	return &battle, nil
}

func (r *inMemoryRepo) SaveState(_ context.Context, battle *combat.Battle) error {
	if battle == nil {
		return errors.InvalidArgument("battle is required")
	}
	if battle.ID == "" {
		return errors.InvalidArgument("battle id is required")
	}

	data, err := json.Marshal(battle)
	if err != nil {
		return errors.Wrap(err, "failed to marshal battle state")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[battle.ID]
	if !ok || r.expired(rec) {
		rec = &battleRecord{
			challengerID: battle.ChallengerID,
			opponentID:   battle.OpponentID,
		}
		r.byID[battle.ID] = rec
		r.byPlayer[battle.ChallengerID] = battle.ID
		r.byPlayer[battle.OpponentID] = battle.ID
	}
	rec.state = data
	rec.expiresAt = r.clock().Add(r.ttl)

	return nil
}
