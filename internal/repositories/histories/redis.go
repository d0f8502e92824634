package histories

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
)

const (
	historyKeyPrefix = "battle_history:"

	// maxKeptRecords caps each player's history list.
	maxKeptRecords = 25
)

type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds the dependencies for the Redis history repository.
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed history repository.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("cfg is required")
	}
	if cfg.Client == nil {
		panic("cfg.Client is required")
	}

	return &redisRepo{client: cfg.Client}
}

func historyKey(playerID string) string {
	return historyKeyPrefix + playerID
}

func (r *redisRepo) Add(ctx context.Context, record *combat.BattleRecord) error {
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

	pipe := r.client.Pipeline()
	for _, playerID := range []string{record.ChallengerID, record.OpponentID} {
		pipe.LPush(ctx, historyKey(playerID), data)
		pipe.LTrim(ctx, historyKey(playerID), 0, maxKeptRecords-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save battle record")
	}

	return nil
}

func (r *redisRepo) ListRecent(ctx context.Context, playerID string, limit int) ([]*combat.BattleRecord, error) {
	if playerID == "" {
		return nil, errors.InvalidArgument("player id is required")
	}
	if limit <= 0 || limit > maxKeptRecords {
		limit = maxKeptRecords
	}

	raw, err := r.client.LRange(ctx, historyKey(playerID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list battle records")
	}

	records := make([]*combat.BattleRecord, 0, len(raw))
	for _, item := range raw {
		var record combat.BattleRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal battle record")
		}
		records = append(records, &record)
	}

	return records, nil
}
