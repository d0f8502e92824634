package combat

import (
	"fmt"
	"time"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
)

// SchemaVersion is bumped whenever the serialized Battle layout changes, so
// a deploy does not silently misread in-flight battles. Loaders treat a
// version mismatch the same as a missing battle.
const SchemaVersion = 1

// ResourceField names a bounded combatant resource.
type ResourceField string

const (
	FieldHP     ResourceField = "current_hp"
	FieldChakra ResourceField = "current_chakra"
)

// Battle is the authoritative state of one ongoing duel. Between turns it
// lives serialized in the battle store; exactly one instance is visible to
// both participants at any time.
type Battle struct {
	SchemaVersion int    `json:"schema_version"`
	ID            string `json:"id"`

	ChallengerID string `json:"challenger_id"`
	OpponentID   string `json:"opponent_id"`

	// TurnHolder is the only participant allowed to act. It is always one
	// of the two participant IDs.
	TurnHolder string `json:"turn_holder"`
	TurnCount  int    `json:"turn_count"`

	Combatants map[string]*CombatantSnapshot `json:"combatants"`

	// Transcript is the append-only human-readable turn log, persisted to
	// battle history when the duel ends.
	Transcript []string `json:"transcript"`

	// Display binding: where the transport layer renders this battle.
	// Opaque to the engine.
	ChannelID string `json:"channel_id,omitempty"`
	MessageID string `json:"message_id,omitempty"`

	LastActionAt time.Time `json:"last_action_at"`
}

// NewBattle snapshots both players and seeds the turn order: the faster
// combatant acts first, ties favor the challenger.
func NewBattle(id string, challenger, opponent *shinobi.Player, now time.Time) *Battle {
	turnHolder := challenger.ID
	if opponent.Speed > challenger.Speed {
		turnHolder = opponent.ID
	}

	return &Battle{
		SchemaVersion: SchemaVersion,
		ID:            id,
		ChallengerID:  challenger.ID,
		OpponentID:    opponent.ID,
		TurnHolder:    turnHolder,
		TurnCount:     1,
		Combatants: map[string]*CombatantSnapshot{
			challenger.ID: NewSnapshot(challenger),
			opponent.ID:   NewSnapshot(opponent),
		},
		Transcript: []string{
			fmt.Sprintf("Battle started between %s and %s!", challenger.Username, opponent.Username),
		},
		LastActionAt: now,
	}
}

// SnapshotFor returns the snapshot for a participant, nil for outsiders.
func (b *Battle) SnapshotFor(playerID string) *CombatantSnapshot {
	return b.Combatants[playerID]
}

// OpponentSnapshotFor returns the other participant's snapshot.
func (b *Battle) OpponentSnapshotFor(playerID string) *CombatantSnapshot {
	return b.Combatants[b.OtherID(playerID)]
}

// OtherID returns the opponent of the given participant.
func (b *Battle) OtherID(playerID string) string {
	if playerID == b.ChallengerID {
		return b.OpponentID
	}
	return b.ChallengerID
}

// HasParticipant reports whether the player is one of the two combatants.
func (b *Battle) HasParticipant(playerID string) bool {
	_, ok := b.Combatants[playerID]
	return ok
}

// AdvanceTurn hands the turn to the other participant, increments the turn
// counter and stamps the staleness clock.
func (b *Battle) AdvanceTurn(now time.Time) {
	b.TurnHolder = b.OtherID(b.TurnHolder)
	b.TurnCount++
	b.LastActionAt = now
}

// ApplyResourceDelta writes a bounds-checked resource value into a
// participant's snapshot: never below zero, never above the max.
func (b *Battle) ApplyResourceDelta(playerID string, field ResourceField, value int) error {
	snap := b.Combatants[playerID]
	if snap == nil {
		return fmt.Errorf("player %s is not in battle %s", playerID, b.ID)
	}

	if value < 0 {
		value = 0
	}

	switch field {
	case FieldHP:
		if value > snap.MaxHP {
			value = snap.MaxHP
		}
		snap.CurrentHP = value
	case FieldChakra:
		if value > snap.MaxChakra {
			value = snap.MaxChakra
		}
		snap.CurrentChakra = value
	default:
		return fmt.Errorf("unknown resource field %q", field)
	}

	return nil
}

// AppendTranscript adds a line to the battle log.
func (b *Battle) AppendTranscript(line string) {
	b.Transcript = append(b.Transcript, line)
}
