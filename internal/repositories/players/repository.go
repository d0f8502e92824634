package players

import (
	"context"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=mockplayers -source=repository.go

// Repository is the persistent player profile store.
type Repository interface {
	// Get returns the profile for a player ID. Not-found is reported with
	// errors.CodeNotFound.
	Get(ctx context.Context, id string) (*shinobi.Player, error)

	// Save upserts a profile.
	Save(ctx context.Context, player *shinobi.Player) error

	// Delete removes a profile. Deleting a missing profile is not an error.
	Delete(ctx context.Context, id string) error
}
