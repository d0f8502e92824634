package players

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
	gameerr "github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
	"github.com/redis/go-redis/v9"
)

const playerKeyPrefix = "player:"

// redisRepo implements Repository on Redis. Profiles are stored as JSON
// blobs with no expiry; the battle store is the only place TTLs apply.
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis player repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed player repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}
	return &redisRepo{client: cfg.Client}
}

func playerKey(id string) string {
	return playerKeyPrefix + id
}

func (r *redisRepo) Get(ctx context.Context, id string) (*shinobi.Player, error) {
	data, err := r.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, gameerr.NotFoundf("player not found: %s", id)
		}
		return nil, gameerr.WrapWithCode(err, gameerr.CodeUnavailable, "failed to get player")
	}

	var player shinobi.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, gameerr.Wrap(err, "failed to deserialize player")
	}

	return &player, nil
}

func (r *redisRepo) Save(ctx context.Context, player *shinobi.Player) error {
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

	if err := r.client.Set(ctx, playerKey(player.ID), data, 0).Err(); err != nil {
		return gameerr.WrapWithCode(err, gameerr.CodeUnavailable,
			fmt.Sprintf("failed to save player %s", player.ID))
	}

	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, playerKey(id)).Err(); err != nil {
		return gameerr.WrapWithCode(err, gameerr.CodeUnavailable,
			fmt.Sprintf("failed to delete player %s", id))
	}
	return nil
}
