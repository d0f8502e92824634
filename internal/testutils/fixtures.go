package testutils

import (
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
)

// CreateTestPlayer creates a fresh level 1 player for a village
func CreateTestPlayer(id, username, village string) *shinobi.Player {
	return shinobi.NewPlayer(id, username, village)
}

// CreateTestVeteran creates a leveled player with boosted stats, useful for
// reward and matchup tests
func CreateTestVeteran(id, username, village string, level int) *shinobi.Player {
	p := shinobi.NewPlayer(id, username, village)
	p.Level = level
	p.Strength += level * 2
	p.Speed += level * 2
	p.Intelligence += level * 2
	p.Stamina += level * 2
	p.RecalculateMaxima()
	p.CurrentHP = p.MaxHP
	p.CurrentChakra = p.MaxChakra
	return p
}
