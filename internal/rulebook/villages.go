package rulebook

// Village describes a hidden village and the elemental affinity bonus its
// shinobi receive.
type Village struct {
	Key          string
	Name         string
	Affinity     Element
	BonusPercent float64
	Icon         string
	StarterJutsu string
}

// Villages is the static village table.
var Villages = map[string]*Village{
	"konoha": {
		Key:          "konoha",
		Name:         "Konoha (Leaf)",
		Affinity:     ElementFire,
		BonusPercent: 0.15,
		Icon:         "🍃",
		StarterJutsu: "flame_bullet",
	},
	"suna": {
		Key:          "suna",
		Name:         "Suna (Sand)",
		Affinity:     ElementWind,
		BonusPercent: 0.15,
		Icon:         "⏳",
		StarterJutsu: "air_bullet",
	},
	"kiri": {
		Key:          "kiri",
		Name:         "Kiri (Mist)",
		Affinity:     ElementWater,
		BonusPercent: 0.15,
		Icon:         "🌊",
		StarterJutsu: "water_bullet",
	},
	"kumo": {
		Key:          "kumo",
		Name:         "Kumo (Cloud)",
		Affinity:     ElementLightning,
		BonusPercent: 0.15,
		Icon:         "⚡",
		StarterJutsu: "lightning_strike",
	},
	"iwa": {
		Key:          "iwa",
		Name:         "Iwa (Stone)",
		Affinity:     ElementEarth,
		BonusPercent: 0.15,
		Icon:         "🪨",
		StarterJutsu: "stone_bullet",
	},
}

// VillageAffinity returns the elemental affinity and bonus percent for a
// village key. Unknown villages have no affinity.
func VillageAffinity(key string) (Element, float64) {
	v, ok := Villages[key]
	if !ok {
		return ElementNone, 0
	}
	return v.Affinity, v.BonusPercent
}

// IsVillage reports whether key names a known village.
func IsVillage(key string) bool {
	_, ok := Villages[key]
	return ok
}
