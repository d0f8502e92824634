package histories

import (
	"context"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=mockhistories -source=repository.go

// Repository stores concluded battle records per participant.
type Repository interface {
	// Add appends a record to both participants' histories.
	Add(ctx context.Context, record *combat.BattleRecord) error

	// ListRecent returns a player's most recent records, newest first.
	ListRecent(ctx context.Context, playerID string, limit int) ([]*combat.BattleRecord, error)
}
