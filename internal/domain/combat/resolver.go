package combat

import (
	"math"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rng"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
)

const (
	critBase       = 0.05
	critSpeedScale = 500.0
	critMultiplier = 1.8

	// a multiplier above this threshold reads as "super effective"
	elementalAdvantageFloor = 1.2
)

// DamageResult is the outcome of resolving one jutsu against a defender.
// A negative Amount is healing applied to the attacker. A zero Amount with a
// status Effect means the orchestrator should record the effect rather than
// deal damage.
type DamageResult struct {
	Amount      int
	IsCritical  bool
	IsElemental bool
	Effect      rulebook.EffectTag
}

// Resolve computes the damage a jutsu deals. Pure except for the single
// critical-hit draw taken from the injected roller.
//
//	base      = power + level*2 + intelligence*1.5
//	village   = base * (1 + affinity bonus)   when the jutsu matches the attacker's affinity
//	elemental = matchup multiplier vs. the defender's village affinity
//	crit      = 1.8x at probability speed/500 + 0.05
//	mitigated = 1 - stamina/(stamina+100)     defender stamina, never reaches full mitigation
func Resolve(attacker, defender *CombatantSnapshot, jutsu *rulebook.Jutsu, roller rng.Roller) (*DamageResult, error) {
	if jutsu == nil {
		return nil, errors.Internal("resolve called with unknown jutsu")
	}

	base := float64(jutsu.Power) + float64(attacker.Level)*2 + float64(attacker.Intelligence)*1.5

	if affinity, bonus := attacker.VillageAffinity(); affinity == jutsu.Element {
		base *= 1 + bonus
	}

	defenderAffinity, _ := defender.VillageAffinity()
	elemental := rulebook.ElementMultiplier(jutsu.Element, defenderAffinity)

	critChance := float64(attacker.Speed)/critSpeedScale + critBase
	isCritical := roller.Float64() < critChance
	crit := 1.0
	if isCritical {
		crit = critMultiplier
	}

	mitigation := 1 - float64(defender.Stamina)/float64(defender.Stamina+100)

	amount := int(math.Floor(base * elemental * crit * mitigation))

	// Effect override: healing is expressed as negative damage applied to
	// the attacker; status effects deal no damage at all.
	switch {
	case jutsu.Effect == rulebook.EffectHeal:
		amount = -jutsu.Power
		if amount > 0 {
			amount = -amount
		}
	case jutsu.Effect != rulebook.EffectNone:
		amount = 0
	}

	return &DamageResult{
		Amount:      amount,
		IsCritical:  isCritical,
		IsElemental: elemental > elementalAdvantageFloor,
		Effect:      jutsu.Effect,
	}, nil
}
