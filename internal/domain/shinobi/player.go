package shinobi

import (
	"fmt"
	"time"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rng"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
)

// CooldownKind names a player cooldown bucket.
type CooldownKind string

const (
	CooldownBattle CooldownKind = "battle"
)

// Player is the persistent profile of one shinobi. Battles never read from
// a live Player mid-fight; they operate on a combat.CombatantSnapshot taken
// at battle start.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Village  string `json:"village"`

	Level    int `json:"level"`
	Exp      int `json:"exp"`
	TotalExp int `json:"total_exp"`

	MaxHP         int `json:"max_hp"`
	CurrentHP     int `json:"current_hp"`
	MaxChakra     int `json:"max_chakra"`
	CurrentChakra int `json:"current_chakra"`

	Strength     int `json:"strength"`
	Speed        int `json:"speed"`
	Intelligence int `json:"intelligence"`
	Stamina      int `json:"stamina"`

	Ryo    int    `json:"ryo"`
	Rank   string `json:"rank"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`

	KnownJutsu      []string                   `json:"known_jutsu"`
	DiscoveredSigns []string                   `json:"discovered_signs"`
	Cooldowns       map[CooldownKind]time.Time `json:"cooldowns,omitempty"`
	CurrentMission  string                     `json:"current_mission,omitempty"`
}

// NewPlayer creates a fresh Academy Student for the given village, with the
// village's starter jutsu alongside the universal basics.
func NewPlayer(id, username, villageKey string) *Player {
	p := &Player{
		ID:           id,
		Username:     username,
		Village:      villageKey,
		Level:        1,
		Strength:     10,
		Speed:        10,
		Intelligence: 10,
		Stamina:      10,
		Ryo:          100,
		Rank:         rulebook.Ranks[0],
		KnownJutsu:   []string{"clone_jutsu", "substitution"},
	}
	if v, ok := rulebook.Villages[villageKey]; ok {
		p.KnownJutsu = append(p.KnownJutsu, v.StarterJutsu)
	}
	p.RecalculateMaxima()
	p.CurrentHP = p.MaxHP
	p.CurrentChakra = p.MaxChakra
	return p
}

// RecalculateMaxima rederives MaxHP and MaxChakra from the stats. The stored
// max columns are a cache of this derivation, never a source of truth; call
// this after any stat change.
func (p *Player) RecalculateMaxima() {
	p.MaxHP = 100 + p.Stamina*10
	p.MaxChakra = 100 + p.Intelligence*10

	if p.CurrentHP > p.MaxHP {
		p.CurrentHP = p.MaxHP
	}
	if p.CurrentChakra > p.MaxChakra {
		p.CurrentChakra = p.MaxChakra
	}
}

// VillageAffinity returns the player's elemental affinity and bonus percent.
func (p *Player) VillageAffinity() (rulebook.Element, float64) {
	return rulebook.VillageAffinity(p.Village)
}

// Knows reports whether the player has learned the given jutsu.
func (p *Player) Knows(jutsuKey string) bool {
	for _, k := range p.KnownJutsu {
		if k == jutsuKey {
			return true
		}
	}
	return false
}

// LearnJutsu adds a jutsu to the known list. Returns false when the jutsu is
// already known or the list is full.
func (p *Player) LearnJutsu(jutsuKey string) bool {
	if p.Knows(jutsuKey) {
		return false
	}
	if len(p.KnownJutsu) >= rulebook.MaxKnownJutsu {
		return false
	}
	p.KnownJutsu = append(p.KnownJutsu, jutsuKey)
	return true
}

// DiscoverSigns records a hand-sign combination the player has found.
// Returns false when the combination was already discovered.
func (p *Player) DiscoverSigns(combo string) bool {
	for _, c := range p.DiscoveredSigns {
		if c == combo {
			return false
		}
	}
	p.DiscoveredSigns = append(p.DiscoveredSigns, combo)
	return true
}

// LevelUpSummary describes what a batch of experience did to the player.
type LevelUpSummary struct {
	ExpGained  int
	LevelsUp   int
	NewLevel   int
	NewRank    string // set only when a rank-up happened
	StatGains  map[string]int
	HPGained   int
	ChakraGain int
}

// AddExperience grants exp and processes any level-ups. Each level
// distributes rulebook.StatGrowthPerLevel points across the four stats using
// the injected roller, rederives the maxima, and heals to full.
func (p *Player) AddExperience(amount int, roller rng.Roller) *LevelUpSummary {
	summary := &LevelUpSummary{
		ExpGained: amount,
		NewLevel:  p.Level,
		StatGains: map[string]int{},
	}
	if p.Level >= rulebook.MaxLevel {
		return summary
	}

	p.Exp += amount
	p.TotalExp += amount

	stats := []string{"strength", "speed", "intelligence", "stamina"}
	for p.Exp >= rulebook.ExpForLevel(p.Level) && p.Level < rulebook.MaxLevel {
		p.Exp -= rulebook.ExpForLevel(p.Level)
		p.Level++
		summary.LevelsUp++

		prevHP, prevChakra := p.MaxHP, p.MaxChakra
		for i := 0; i < rulebook.StatGrowthPerLevel; i++ {
			stat := stats[roller.Intn(len(stats))]
			summary.StatGains[stat]++
			switch stat {
			case "strength":
				p.Strength++
			case "speed":
				p.Speed++
			case "intelligence":
				p.Intelligence++
			case "stamina":
				p.Stamina++
			}
		}
		p.RecalculateMaxima()
		summary.HPGained += p.MaxHP - prevHP
		summary.ChakraGain += p.MaxChakra - prevChakra

		// Level up heals to full.
		p.CurrentHP = p.MaxHP
		p.CurrentChakra = p.MaxChakra

		if next := rulebook.NextRank(p.Rank); next != "" && p.Level >= rulebook.RankUpLevels[p.Rank] {
			p.Rank = next
			summary.NewRank = next
		}
	}
	summary.NewLevel = p.Level

	return summary
}

// OnCooldown reports whether the given cooldown is still running and how
// long remains.
func (p *Player) OnCooldown(kind CooldownKind, now time.Time) (bool, time.Duration) {
	until, ok := p.Cooldowns[kind]
	if !ok || !now.Before(until) {
		return false, 0
	}
	return true, until.Sub(now)
}

// SetCooldown starts a cooldown of the given duration.
func (p *Player) SetCooldown(kind CooldownKind, d time.Duration, now time.Time) {
	if p.Cooldowns == nil {
		p.Cooldowns = make(map[CooldownKind]time.Time)
	}
	p.Cooldowns[kind] = now.Add(d)
}

// DisplayTag is the short form used in logs and battle transcripts.
func (p *Player) DisplayTag() string {
	return fmt.Sprintf("%s [Lvl %d]", p.Username, p.Level)
}
