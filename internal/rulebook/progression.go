package rulebook

// Rank ladder, lowest first.
var Ranks = []string{
	"Academy Student",
	"Genin",
	"Chunin",
	"Jonin",
	"Kage",
}

// RankUpLevels maps a rank to the level at which the next rank is earned.
// Kage is terminal.
var RankUpLevels = map[string]int{
	"Academy Student": 10,
	"Genin":           25,
	"Chunin":          40,
	"Jonin":           60,
}

const (
	// MaxLevel caps progression
	MaxLevel = 60

	// StatGrowthPerLevel is the number of stat points distributed on level up
	StatGrowthPerLevel = 6

	// MaxKnownJutsu caps a player's learned jutsu list
	MaxKnownJutsu = 25
)

// ExpForLevel returns the EXP needed to advance past the given level.
func ExpForLevel(level int) int {
	return level * 150
}

// NextRank returns the rank after the given one, or "" when terminal.
func NextRank(rank string) string {
	for i, r := range Ranks {
		if r == rank && i+1 < len(Ranks) {
			return Ranks[i+1]
		}
	}
	return ""
}
