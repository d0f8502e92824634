package rulebook

import "strings"

// EffectTag marks a jutsu whose outcome is something other than direct
// damage. Applying the effect is the turn orchestrator's job; the damage
// resolver only reports the tag.
type EffectTag string

const (
	EffectNone         EffectTag = ""
	EffectHeal         EffectTag = "heal"
	EffectStun         EffectTag = "stun"
	EffectDefenseUp    EffectTag = "defense_up"
	EffectEvasionUp    EffectTag = "evasion_up"
	EffectAccuracyDown EffectTag = "accuracy_down"
	EffectDodge        EffectTag = "dodge"
	EffectDistract     EffectTag = "distract"
)

// IsStatus reports whether the tag is recorded on the actor as a
// turn-counted battle effect.
func (t EffectTag) IsStatus() bool {
	switch t {
	case EffectStun, EffectDefenseUp, EffectEvasionUp, EffectAccuracyDown:
		return true
	}
	return false
}

// HandSigns are the signs jutsu sequences are built from.
var HandSigns = []string{
	"tiger", "snake", "dog", "bird", "ram",
	"boar", "hare", "rat", "monkey", "dragon",
}

// IsHandSign reports whether s names one of the ten hand signs.
func IsHandSign(s string) bool {
	for _, sign := range HandSigns {
		if s == sign {
			return true
		}
	}
	return false
}

// Jutsu is a static ability definition. The library is read-only and
// resident for the process lifetime.
type Jutsu struct {
	Key           string
	Name          string
	Signs         []string
	Power         int
	ChakraCost    int
	Element       Element
	LevelRequired int
	Discovered    bool // listed in the public scroll vs. discovered by sign combos
	Effect        EffectTag
}

// Library is the full jutsu table, keyed by jutsu key.
var Library = map[string]*Jutsu{
	// --- Fire ---
	"fireball": {
		Key: "fireball", Name: "Fireball Jutsu",
		Signs: []string{"tiger", "snake", "bird"},
		Power: 45, ChakraCost: 25, Element: ElementFire, LevelRequired: 5, Discovered: true,
	},
	"great_fireball": {
		Key: "great_fireball", Name: "Great Fireball Jutsu",
		Signs: []string{"tiger", "snake", "ram", "bird"},
		Power: 70, ChakraCost: 40, Element: ElementFire, LevelRequired: 12, Discovered: true,
	},
	"fire_phoenix": {
		Key: "fire_phoenix", Name: "Phoenix Flower Jutsu",
		Signs: []string{"tiger", "snake", "boar", "bird", "dragon"},
		Power: 95, ChakraCost: 60, Element: ElementFire, LevelRequired: 25,
	},
	"dragon_flame": {
		Key: "dragon_flame", Name: "Dragon Flame Jutsu",
		Signs: []string{"snake", "dragon", "ram", "tiger"},
		Power: 80, ChakraCost: 50, Element: ElementFire, LevelRequired: 20,
	},
	"ash_pile_burning": {
		Key: "ash_pile_burning", Name: "Ash Pile Burning",
		Signs: []string{"snake", "rat", "snake", "tiger"},
		Power: 110, ChakraCost: 70, Element: ElementFire, LevelRequired: 30,
	},
	"flame_bullet": {
		Key: "flame_bullet", Name: "Flame Bullet",
		Signs: []string{"tiger", "ram"},
		Power: 30, ChakraCost: 15, Element: ElementFire, LevelRequired: 1, Discovered: true,
	},

	// --- Water ---
	"water_dragon": {
		Key: "water_dragon", Name: "Water Dragon Jutsu",
		Signs: []string{"tiger", "dog", "snake", "bird"},
		Power: 65, ChakraCost: 35, Element: ElementWater, LevelRequired: 15, Discovered: true,
	},
	"water_shark_bomb": {
		Key: "water_shark_bomb", Name: "Water Shark Bomb",
		Signs: []string{"tiger", "boar", "dog", "dragon", "bird"},
		Power: 100, ChakraCost: 65, Element: ElementWater, LevelRequired: 28,
	},
	"hidden_mist": {
		Key: "hidden_mist", Name: "Hidden Mist Jutsu",
		Signs: []string{"ram", "snake", "tiger"},
		Power: 0, ChakraCost: 40, Element: ElementWater, LevelRequired: 18,
		Effect: EffectEvasionUp,
	},
	"water_vortex": {
		Key: "water_vortex", Name: "Water Vortex Jutsu",
		Signs: []string{"tiger", "snake", "rat", "bird"},
		Power: 75, ChakraCost: 45, Element: ElementWater, LevelRequired: 22,
	},
	"water_prison": {
		Key: "water_prison", Name: "Water Prison Jutsu",
		Signs: []string{"snake", "ram", "boar", "dragon"},
		Power: 0, ChakraCost: 55, Element: ElementWater, LevelRequired: 24,
		Effect: EffectStun,
	},
	"water_bullet": {
		Key: "water_bullet", Name: "Water Bullet",
		Signs: []string{"ram", "dog"},
		Power: 30, ChakraCost: 15, Element: ElementWater, LevelRequired: 1, Discovered: true,
	},

	// --- Wind ---
	"wind_scythe": {
		Key: "wind_scythe", Name: "Wind Scythe Jutsu",
		Signs: []string{"snake", "bird", "dragon"},
		Power: 50, ChakraCost: 30, Element: ElementWind, LevelRequired: 8, Discovered: true,
	},
	"great_breakthrough": {
		Key: "great_breakthrough", Name: "Great Breakthrough",
		Signs: []string{"tiger", "hare", "dog", "ram"},
		Power: 70, ChakraCost: 40, Element: ElementWind, LevelRequired: 14, Discovered: true,
	},
	"vacuum_blade": {
		Key: "vacuum_blade", Name: "Vacuum Blade",
		Signs: []string{"dog", "bird", "snake", "dragon"},
		Power: 105, ChakraCost: 65, Element: ElementWind, LevelRequired: 27,
	},
	"wind_gale": {
		Key: "wind_gale", Name: "Gale Palm",
		Signs: []string{"snake", "ram", "monkey"},
		Power: 60, ChakraCost: 35, Element: ElementWind, LevelRequired: 16,
	},
	"air_bullet": {
		Key: "air_bullet", Name: "Air Bullet",
		Signs: []string{"bird", "hare"},
		Power: 30, ChakraCost: 15, Element: ElementWind, LevelRequired: 1, Discovered: true,
	},
	"dust_cloud": {
		Key: "dust_cloud", Name: "Dust Cloud Jutsu",
		Signs: []string{"tiger", "ram", "dog"},
		Power: 0, ChakraCost: 30, Element: ElementWind, LevelRequired: 10,
		Effect: EffectAccuracyDown,
	},

	// --- Lightning ---
	"lightning_bolt": {
		Key: "lightning_bolt", Name: "Lightning Bolt",
		Signs: []string{"boar", "snake", "tiger"},
		Power: 55, ChakraCost: 30, Element: ElementLightning, LevelRequired: 9, Discovered: true,
	},
	"lightning_panther": {
		Key: "lightning_panther", Name: "Lightning Panther",
		Signs: []string{"boar", "dog", "snake", "bird", "tiger"},
		Power: 115, ChakraCost: 70, Element: ElementLightning, LevelRequired: 30,
	},
	"chidori_stream": {
		Key: "chidori_stream", Name: "Chidori Stream",
		Signs: []string{"monkey", "dragon", "rat", "bird"},
		Power: 85, ChakraCost: 55, Element: ElementLightning, LevelRequired: 24,
	},
	"lightning_snake": {
		Key: "lightning_snake", Name: "Lightning Snake",
		Signs: []string{"snake", "dragon", "snake"},
		Power: 70, ChakraCost: 40, Element: ElementLightning, LevelRequired: 17,
	},
	"lightning_strike": {
		Key: "lightning_strike", Name: "Lightning Strike",
		Signs: []string{"rat", "boar"},
		Power: 30, ChakraCost: 15, Element: ElementLightning, LevelRequired: 1, Discovered: true,
	},
	"lightning_armor": {
		Key: "lightning_armor", Name: "Lightning Armor",
		Signs: []string{"tiger", "boar", "ram"},
		Power: 0, ChakraCost: 50, Element: ElementLightning, LevelRequired: 20,
		Effect: EffectDefenseUp,
	},

	// --- Earth ---
	"earth_wall": {
		Key: "earth_wall", Name: "Earth Style Wall",
		Signs: []string{"tiger", "hare", "boar", "dog"},
		Power: 0, ChakraCost: 35, Element: ElementEarth, LevelRequired: 10, Discovered: true,
		Effect: EffectDefenseUp,
	},
	"mud_river": {
		Key: "mud_river", Name: "Mud River",
		Signs: []string{"ram", "boar", "snake"},
		Power: 60, ChakraCost: 35, Element: ElementEarth, LevelRequired: 13, Discovered: true,
	},
	"rock_golem": {
		Key: "rock_golem", Name: "Rock Golem Jutsu",
		Signs: []string{"snake", "boar", "ram", "dog", "tiger"},
		Power: 120, ChakraCost: 80, Element: ElementEarth, LevelRequired: 32,
	},
	"earth_dragon_bomb": {
		Key: "earth_dragon_bomb", Name: "Earth Dragon Bomb",
		Signs: []string{"ram", "boar", "dragon", "bird"},
		Power: 90, ChakraCost: 55, Element: ElementEarth, LevelRequired: 26,
	},
	"rock_slide": {
		Key: "rock_slide", Name: "Rock Slide",
		Signs: []string{"boar", "dog", "ram"},
		Power: 75, ChakraCost: 45, Element: ElementEarth, LevelRequired: 19,
	},
	"stone_bullet": {
		Key: "stone_bullet", Name: "Stone Bullet",
		Signs: []string{"dog", "boar"},
		Power: 30, ChakraCost: 15, Element: ElementEarth, LevelRequired: 1, Discovered: true,
	},

	// --- Non-elemental ---
	"substitution": {
		Key: "substitution", Name: "Substitution Jutsu",
		Signs: []string{"ram", "boar", "tiger"},
		Power: 0, ChakraCost: 20, Element: ElementNone, LevelRequired: 3, Discovered: true,
		Effect: EffectDodge,
	},
	"clone_jutsu": {
		Key: "clone_jutsu", Name: "Clone Jutsu",
		Signs: []string{"ram", "snake", "tiger"},
		Power: 0, ChakraCost: 15, Element: ElementNone, LevelRequired: 1, Discovered: true,
		Effect: EffectDistract,
	},
	"chakra_heal": {
		Key: "chakra_heal", Name: "Chakra Heal",
		Signs: []string{"rat", "ram", "snake"},
		Power: 50, ChakraCost: 30, Element: ElementNone, LevelRequired: 8, Discovered: true,
		Effect: EffectHeal,
	},
}

// GetJutsu returns the jutsu for a key, or nil when unknown.
func GetJutsu(key string) *Jutsu {
	return Library[key]
}

// FindJutsuByName resolves a display name (case-insensitive) to its jutsu.
// Returns nil when no jutsu matches.
func FindJutsuByName(name string) *Jutsu {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, j := range Library {
		if strings.ToLower(j.Name) == want {
			return j
		}
	}
	return nil
}

// JutsuForSigns resolves a hand-sign sequence to the jutsu it forms.
// Returns nil when the combination forms nothing.
func JutsuForSigns(signs []string) *Jutsu {
	for _, j := range Library {
		if len(j.Signs) != len(signs) {
			continue
		}
		match := true
		for i := range signs {
			if !strings.EqualFold(signs[i], j.Signs[i]) {
				match = false
				break
			}
		}
		if match {
			return j
		}
	}
	return nil
}
