package battles

import (
	"context"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=mockbattles -source=repository.go

// Repository is the matchmaking lock manager and externalized battle state
// store. Every record (two per-player locks, two player->battle lookups and
// the state blob) shares one bounded expiry window; a battle that sees no
// turn within the window simply vanishes from the store and is treated as
// abandoned on next access.
type Repository interface {
	// AcquireLocks atomically commits both players to the battle. It fails
	// with errors.CodeBusy — leaving no partial locks behind — when either
	// player is already locked into another battle.
	AcquireLocks(ctx context.Context, battleID, challengerID, opponentID string) error

	// ReleaseLocks removes the locks, lookups and state for a battle. It is
	// idempotent: missing keys are not an error.
	ReleaseLocks(ctx context.Context, battleID, challengerID, opponentID string) error

	// BattleIDFor returns the battle a player is locked into.
	// errors.CodeNotFound when the player is free.
	BattleIDFor(ctx context.Context, playerID string) (string, error)

	// OpponentOf returns who a player is locked against.
	// errors.CodeNotFound when the player is free.
	OpponentOf(ctx context.Context, playerID string) (string, error)

	// GetState loads the authoritative battle state. errors.CodeNotFound
	// when the battle is missing, expired, or serialized with an
	// incompatible schema version.
	GetState(ctx context.Context, battleID string) (*combat.Battle, error)

	// SaveState persists the battle state and refreshes the shared expiry
	// window on every record belonging to the battle.
	SaveState(ctx context.Context, battle *combat.Battle) error
}
