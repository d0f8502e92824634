package rulebook_test

import (
	"testing"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJutsu(t *testing.T) {
	fireball := rulebook.GetJutsu("fireball")
	require.NotNil(t, fireball)
	assert.Equal(t, "Fireball Jutsu", fireball.Name)
	assert.Equal(t, 45, fireball.Power)
	assert.Equal(t, 25, fireball.ChakraCost)
	assert.Equal(t, rulebook.ElementFire, fireball.Element)

	assert.Nil(t, rulebook.GetJutsu("rasengan"))
}

func TestFindJutsuByName(t *testing.T) {
	j := rulebook.FindJutsuByName("  fireball jutsu ")
	require.NotNil(t, j)
	assert.Equal(t, "fireball", j.Key)

	assert.Nil(t, rulebook.FindJutsuByName("Unknown Technique"))
}

func TestJutsuForSigns(t *testing.T) {
	j := rulebook.JutsuForSigns([]string{"tiger", "snake", "bird"})
	require.NotNil(t, j)
	assert.Equal(t, "fireball", j.Key)

	// Order matters.
	assert.Nil(t, rulebook.JutsuForSigns([]string{"bird", "snake", "tiger"}))
	assert.Nil(t, rulebook.JutsuForSigns([]string{"tiger"}))
}

func TestLibraryIntegrity(t *testing.T) {
	for key, j := range rulebook.Library {
		assert.Equal(t, key, j.Key)
		assert.NotEmpty(t, j.Name)
		assert.NotEmpty(t, j.Signs)
		assert.GreaterOrEqual(t, j.Power, 0)
		assert.Greater(t, j.ChakraCost, 0)
		assert.Contains(t, rulebook.Elements, j.Element)
		if j.Effect.IsStatus() || j.Effect == rulebook.EffectDodge || j.Effect == rulebook.EffectDistract {
			assert.Zerof(t, j.Power, "status jutsu %s must carry no power", key)
		}
	}
}

func TestEffectTagIsStatus(t *testing.T) {
	assert.True(t, rulebook.EffectStun.IsStatus())
	assert.True(t, rulebook.EffectDefenseUp.IsStatus())
	assert.True(t, rulebook.EffectEvasionUp.IsStatus())
	assert.True(t, rulebook.EffectAccuracyDown.IsStatus())
	assert.False(t, rulebook.EffectHeal.IsStatus())
	assert.False(t, rulebook.EffectNone.IsStatus())
}

func TestVillageAffinity(t *testing.T) {
	elem, bonus := rulebook.VillageAffinity("konoha")
	assert.Equal(t, rulebook.ElementFire, elem)
	assert.Equal(t, 0.15, bonus)

	elem, bonus = rulebook.VillageAffinity("rain")
	assert.Equal(t, rulebook.ElementNone, elem)
	assert.Zero(t, bonus)
}

func TestStarterJutsuExist(t *testing.T) {
	for key, v := range rulebook.Villages {
		require.NotNilf(t, rulebook.GetJutsu(v.StarterJutsu), "village %s starter", key)
	}
}
