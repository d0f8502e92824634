package players

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
	gameerr "github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
)

// inMemoryRepository implements Repository for local development and tests.
// Profiles are deep-copied through JSON so callers never share memory with
// the store, matching the Redis implementation's semantics.
type inMemoryRepository struct {
	mu      sync.RWMutex
	players map[string][]byte
}

// NewInMemoryRepository creates a new in-memory player repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		players: make(map[string][]byte),
	}
}

func (r *inMemoryRepository) Get(_ context.Context, id string) (*shinobi.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.players[id]
	if !ok {
		return nil, gameerr.NotFoundf("player not found: %s", id)
	}

	var player shinobi.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, gameerr.Wrap(err, "failed to deserialize player")
	}
	return &player, nil
}

func (r *inMemoryRepository) Save(_ context.Context, player *shinobi.Player) error {
	if player == nil {
		return gameerr.InvalidArgument("player cannot be nil")
	}
	if player.ID == "" {
		return gameerr.InvalidArgument("player ID cannot be empty")
	}

	data, err := json.Marshal(player)
	if err != nil {
		return gameerr.Wrap(err, "failed to serialize player")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[player.ID] = data
	return nil
}

func (r *inMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
	return nil
}
