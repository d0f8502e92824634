package rulebook

// Element is a chakra nature. "none" covers non-elemental jutsu and
// villageless defenders.
type Element string

const (
	ElementFire      Element = "fire"
	ElementWater     Element = "water"
	ElementWind      Element = "wind"
	ElementEarth     Element = "earth"
	ElementLightning Element = "lightning"
	ElementNone      Element = "none"
)

// Elements lists every element including ElementNone.
var Elements = []Element{
	ElementFire,
	ElementWater,
	ElementWind,
	ElementEarth,
	ElementLightning,
	ElementNone,
}

// elementMatrix maps (attacking element, defending element) to a damage
// multiplier. The table is deliberately asymmetric: fire beats wind 1.5x but
// wind into fire is only resisted at 0.75x.
var elementMatrix = map[Element]map[Element]float64{
	ElementFire: {
		ElementWind: 1.5, ElementEarth: 0.75, ElementWater: 0.5,
		ElementLightning: 1.0, ElementFire: 1.0, ElementNone: 1.0,
	},
	ElementWater: {
		ElementFire: 1.5, ElementEarth: 1.0, ElementLightning: 0.5,
		ElementWind: 0.75, ElementWater: 1.0, ElementNone: 1.0,
	},
	ElementWind: {
		ElementLightning: 1.5, ElementEarth: 0.5, ElementFire: 0.75,
		ElementWater: 1.0, ElementWind: 1.0, ElementNone: 1.0,
	},
	ElementEarth: {
		ElementLightning: 1.5, ElementWater: 0.75, ElementFire: 1.0,
		ElementWind: 1.5, ElementEarth: 1.0, ElementNone: 1.0,
	},
	ElementLightning: {
		ElementWater: 1.5, ElementEarth: 0.5, ElementWind: 0.75,
		ElementFire: 1.0, ElementLightning: 1.0, ElementNone: 1.0,
	},
	ElementNone: {
		ElementFire: 1.0, ElementWater: 1.0, ElementWind: 1.0,
		ElementEarth: 1.0, ElementLightning: 1.0, ElementNone: 1.0,
	},
}

// ElementMultiplier returns the matchup multiplier for an attack of the
// given element against a defender of the given affinity. Unknown elements
// are treated as neutral.
func ElementMultiplier(attack, defense Element) float64 {
	row, ok := elementMatrix[attack]
	if !ok {
		return 1.0
	}
	mult, ok := row[defense]
	if !ok {
		return 1.0
	}
	return mult
}
