package histories

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
)

type inMemoryRepo struct {
	mu sync.RWMutex
	// byPlayer holds JSON-encoded records, newest first.
	byPlayer map[string][][]byte
}

// NewInMemoryRepository creates an in-memory history repository.
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{
		byPlayer: make(map[string][][]byte),
	}
}

func (r *inMemoryRepo) Add(_ context.Context, record *combat.BattleRecord) error {
	if record == nil {
		return errors.InvalidArgument("record is required")
	}
	if record.ChallengerID == "" || record.OpponentID == "" {
		return errors.InvalidArgument("record participants are required")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to marshal battle record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, playerID := range []string{record.ChallengerID, record.OpponentID} {
		list := append([][]byte{data}, r.byPlayer[playerID]...)
		if len(list) > maxKeptRecords {
			list = list[:maxKeptRecords]
		}
		r.byPlayer[playerID] = list
	}

	return nil
}

func (r *inMemoryRepo) ListRecent(_ context.Context, playerID string, limit int) ([]*combat.BattleRecord, error) {
	if playerID == "" {
		return nil, errors.InvalidArgument("player id is required")
	}
	if limit <= 0 || limit > maxKeptRecords {
		limit = maxKeptRecords
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byPlayer[playerID]
	if len(list) > limit {
		list = list[:limit]
	}

	records := make([]*combat.BattleRecord, 0, len(list))
	for _, item := range list {
		var record combat.BattleRecord
		if err := json.Unmarshal(item, &record); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal battle record")
		}
		records = append(records, &record)
	}

	return records, nil
}
