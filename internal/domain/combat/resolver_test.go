package combat_test

import (
	"testing"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
	mockrng "github.com/hiddenleafgames/shinobi-bot-discord/internal/rng/mock"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(village string, level, strength, speed, intelligence, stamina int) *combat.CombatantSnapshot {
	return &combat.CombatantSnapshot{
		ID:           "combatant-" + village,
		Username:     village + "-fighter",
		Village:      village,
		Level:        level,
		CurrentHP:    200,
		MaxHP:        200,
		CurrentChakra: 200,
		MaxChakra:    200,
		Strength:     strength,
		Speed:        speed,
		Intelligence: intelligence,
		Stamina:      stamina,
		Effects:      map[rulebook.EffectTag]int{},
	}
}

func TestResolve_KnownScenario(t *testing.T) {
	// Attacker level 5, int 10, konoha (fire affinity, +15%); fireball
	// (power 45, fire); defender suna (wind affinity), stamina 10.
	// base = 45 + 10 + 15 = 70; village: 70*1.15 = 80.5; fire->wind 1.5;
	// mitigation = 1 - 10/110; non-crit damage = floor(109.77...) = 109.
	attacker := snapshot("konoha", 5, 10, 0, 10, 10)
	defender := snapshot("suna", 5, 10, 10, 10, 10)

	roller := mockrng.NewManualMockRoller()
	roller.SetFloats(0.99) // no crit

	result, err := combat.Resolve(attacker, defender, rulebook.GetJutsu("fireball"), roller)
	require.NoError(t, err)

	assert.Equal(t, 109, result.Amount)
	assert.False(t, result.IsCritical)
	assert.True(t, result.IsElemental)
	assert.Equal(t, rulebook.EffectNone, result.Effect)
}

func TestResolve_CriticalHit(t *testing.T) {
	attacker := snapshot("konoha", 5, 10, 0, 10, 10)
	defender := snapshot("suna", 5, 10, 10, 10, 10)

	roller := mockrng.NewManualMockRoller()
	roller.SetFloats(0.0) // guaranteed crit

	result, err := combat.Resolve(attacker, defender, rulebook.GetJutsu("fireball"), roller)
	require.NoError(t, err)

	assert.True(t, result.IsCritical)
	// 109.77 * 1.8 = 197.59..., floored.
	assert.Equal(t, 197, result.Amount)
}

func TestResolve_CritChanceScalesWithSpeed(t *testing.T) {
	// speed 100 -> crit chance 0.25. A draw of 0.24 crits, 0.26 does not.
	attacker := snapshot("konoha", 5, 10, 100, 10, 10)
	defender := snapshot("suna", 5, 10, 10, 10, 10)

	roller := mockrng.NewManualMockRoller()
	roller.SetFloats(0.24, 0.26)

	result, err := combat.Resolve(attacker, defender, rulebook.GetJutsu("fireball"), roller)
	require.NoError(t, err)
	assert.True(t, result.IsCritical)

	result, err = combat.Resolve(attacker, defender, rulebook.GetJutsu("fireball"), roller)
	require.NoError(t, err)
	assert.False(t, result.IsCritical)
}

func TestResolve_HealIsNegativeDamage(t *testing.T) {
	attacker := snapshot("konoha", 8, 10, 10, 10, 10)
	defender := snapshot("suna", 8, 10, 10, 10, 10)

	roller := mockrng.NewManualMockRoller()

	result, err := combat.Resolve(attacker, defender, rulebook.GetJutsu("chakra_heal"), roller)
	require.NoError(t, err)

	assert.Equal(t, rulebook.EffectHeal, result.Effect)
	assert.Equal(t, -50, result.Amount, "heal amount is -abs(power)")
}

func TestResolve_StatusEffectsDealNoDamage(t *testing.T) {
	attacker := snapshot("kumo", 20, 10, 10, 10, 10)
	defender := snapshot("suna", 20, 10, 10, 10, 10)

	roller := mockrng.NewManualMockRoller()

	for _, key := range []string{"earth_wall", "hidden_mist", "water_prison", "dust_cloud"} {
		jutsu := rulebook.GetJutsu(key)
		require.NotNil(t, jutsu)

		result, err := combat.Resolve(attacker, defender, jutsu, roller)
		require.NoError(t, err)

		assert.Zerof(t, result.Amount, "%s must not deal direct damage", key)
		assert.Truef(t, result.Effect.IsStatus(), "%s carries a status tag", key)
	}
}

func TestResolve_NonNegativeForNonHeals(t *testing.T) {
	roller := mockrng.NewManualMockRoller()

	attacker := snapshot("kiri", 30, 10, 10, 50, 10)
	defender := snapshot("iwa", 30, 10, 10, 10, 500) // extreme stamina

	for key, jutsu := range rulebook.Library {
		result, err := combat.Resolve(attacker, defender, jutsu, roller)
		require.NoError(t, err)
		if jutsu.Effect == rulebook.EffectHeal {
			assert.LessOrEqualf(t, result.Amount, 0, "%s heals", key)
		} else {
			assert.GreaterOrEqualf(t, result.Amount, 0, "%s never goes negative", key)
		}
	}
}

func TestResolve_MitigationNeverReachesZeroDamage(t *testing.T) {
	// Stamina asymptotically mitigates but never to a full block of a big
	// enough hit: multiplier is 1 - sta/(sta+100) > 0 for any stamina.
	attacker := snapshot("iwa", 60, 10, 0, 100, 10)
	defender := snapshot("konoha", 60, 10, 10, 10, 10000)

	roller := mockrng.NewManualMockRoller()
	roller.SetFloats(0.99)

	result, err := combat.Resolve(attacker, defender, rulebook.GetJutsu("rock_golem"), roller)
	require.NoError(t, err)
	assert.Greater(t, result.Amount, 0)
}

func TestResolve_UnknownJutsuIsInternalError(t *testing.T) {
	attacker := snapshot("konoha", 5, 10, 10, 10, 10)
	defender := snapshot("suna", 5, 10, 10, 10, 10)

	roller := mockrng.NewManualMockRoller()

	result, err := combat.Resolve(attacker, defender, nil, roller)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
}

func TestResolve_NoAffinityBonusForMismatchedElement(t *testing.T) {
	// Konoha (fire affinity) throwing a water jutsu gets no village bonus.
	attacker := snapshot("konoha", 15, 10, 0, 10, 10)
	defender := snapshot("kumo", 15, 10, 10, 10, 0) // lightning affinity, no mitigation

	roller := mockrng.NewManualMockRoller()
	roller.SetFloats(0.99)

	// base = 65 + 30 + 15 = 110; water->lightning resisted at 0.5; no
	// mitigation at stamina 0: floor(110 * 0.5) = 55.
	result, err := combat.Resolve(attacker, defender, rulebook.GetJutsu("water_dragon"), roller)
	require.NoError(t, err)
	assert.Equal(t, 55, result.Amount)
	assert.False(t, result.IsElemental)
}
