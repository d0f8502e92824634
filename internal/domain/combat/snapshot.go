package combat

import (
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
)

// CombatantSnapshot freezes the combat-relevant slice of a player profile at
// battle start. Battles read and mutate only the snapshot, so a training job
// or mission completing mid-fight never perturbs an ongoing duel. The
// snapshot is reconciled back to the profile store when the battle ends.
type CombatantSnapshot struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Village  string `json:"village"`
	Level    int    `json:"level"`

	CurrentHP     int `json:"current_hp"`
	MaxHP         int `json:"max_hp"`
	CurrentChakra int `json:"current_chakra"`
	MaxChakra     int `json:"max_chakra"`

	Strength     int `json:"strength"`
	Speed        int `json:"speed"`
	Intelligence int `json:"intelligence"`
	Stamina      int `json:"stamina"`

	KnownJutsu []string `json:"known_jutsu"`

	// Effects maps an active status effect to its remaining-turn counter.
	// Counters are decremented at the start of each turn the affected
	// combatant takes.
	Effects map[rulebook.EffectTag]int `json:"effects,omitempty"`
}

// NewSnapshot copies the combat-relevant attributes out of a player profile.
func NewSnapshot(p *shinobi.Player) *CombatantSnapshot {
	known := make([]string, len(p.KnownJutsu))
	copy(known, p.KnownJutsu)

	return &CombatantSnapshot{
		ID:            p.ID,
		Username:      p.Username,
		Village:       p.Village,
		Level:         p.Level,
		CurrentHP:     p.CurrentHP,
		MaxHP:         p.MaxHP,
		CurrentChakra: p.CurrentChakra,
		MaxChakra:     p.MaxChakra,
		Strength:      p.Strength,
		Speed:         p.Speed,
		Intelligence:  p.Intelligence,
		Stamina:       p.Stamina,
		KnownJutsu:    known,
		Effects:       make(map[rulebook.EffectTag]int),
	}
}

// Knows reports whether the snapshot's known-jutsu set contains the key.
func (c *CombatantSnapshot) Knows(jutsuKey string) bool {
	for _, k := range c.KnownJutsu {
		if k == jutsuKey {
			return true
		}
	}
	return false
}

// VillageAffinity returns the combatant's elemental affinity and bonus.
func (c *CombatantSnapshot) VillageAffinity() (rulebook.Element, float64) {
	return rulebook.VillageAffinity(c.Village)
}

// ApplyEffect records a status effect with the given remaining-turn counter.
// Re-applying an effect resets its counter.
func (c *CombatantSnapshot) ApplyEffect(tag rulebook.EffectTag, turns int) {
	if c.Effects == nil {
		c.Effects = make(map[rulebook.EffectTag]int)
	}
	c.Effects[tag] = turns
}

// TickEffects decrements every active effect counter by one turn and removes
// the ones that expire. Returns the expired tags.
func (c *CombatantSnapshot) TickEffects() []rulebook.EffectTag {
	var expired []rulebook.EffectTag
	for tag, remaining := range c.Effects {
		remaining--
		if remaining <= 0 {
			delete(c.Effects, tag)
			expired = append(expired, tag)
			continue
		}
		c.Effects[tag] = remaining
	}
	return expired
}
