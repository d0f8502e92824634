package battles

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
)

const (
	lockKeyPrefix   = "battle_lock:"
	lookupKeyPrefix = "user_battle:"
	stateKeyPrefix  = "battle_state:"
)

type redisRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisRepoConfig holds the dependencies for the Redis battle repository.
type RedisRepoConfig struct {
	Client redis.UniversalClient
	// TTL bounds how long an idle battle survives. Zero means no expiry.
	TTL time.Duration
}

// NewRedisRepository creates a Redis-backed battle repository.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("cfg is required")
	}
	if cfg.Client == nil {
		panic("cfg.Client is required")
	}

	return &redisRepo{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}
}

func lockKey(playerID string) string {
	return lockKeyPrefix + playerID
}

func lookupKey(playerID string) string {
	return lookupKeyPrefix + playerID
}

func stateKey(battleID string) string {
	return stateKeyPrefix + battleID
}

func (r *redisRepo) AcquireLocks(ctx context.Context, battleID, challengerID, opponentID string) error {
	if battleID == "" {
		return errors.InvalidArgument("battle id is required")
	}
	if challengerID == "" || opponentID == "" {
		return errors.InvalidArgument("both player ids are required")
	}

	pipe := r.client.Pipeline()
	challengerLock := pipe.SetNX(ctx, lockKey(challengerID), opponentID, r.ttl)
	opponentLock := pipe.SetNX(ctx, lockKey(opponentID), challengerID, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to acquire battle locks")
	}

	gotChallenger := challengerLock.Val()
	gotOpponent := opponentLock.Val()

	// Roll back only the lock this attempt created. A lock held by another
	// battle must survive the failed acquisition.
	if !gotChallenger || !gotOpponent {
		if gotChallenger {
			if err := r.client.Del(ctx, lockKey(challengerID)).Err(); err != nil {
				return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to roll back challenger lock")
			}
		}
		if gotOpponent {
			if err := r.client.Del(ctx, lockKey(opponentID)).Err(); err != nil {
				return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to roll back opponent lock")
			}
		}
		if !gotChallenger {
			return errors.Busyf("player %s is already in a battle", challengerID)
		}
		return errors.Busyf("player %s is already in a battle", opponentID)
	}

	pipe = r.client.Pipeline()
	pipe.Set(ctx, lookupKey(challengerID), battleID, r.ttl)
	pipe.Set(ctx, lookupKey(opponentID), battleID, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to write battle lookups")
	}

	return nil
}

func (r *redisRepo) ReleaseLocks(ctx context.Context, battleID, challengerID, opponentID string) error {
	keys := make([]string, 0, 5)
	if battleID != "" {
		keys = append(keys, stateKey(battleID))
	}
	if challengerID != "" {
		keys = append(keys, lockKey(challengerID), lookupKey(challengerID))
	}
	if opponentID != "" {
		keys = append(keys, lockKey(opponentID), lookupKey(opponentID))
	}
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to release battle locks")
	}

	return nil
}

func (r *redisRepo) BattleIDFor(ctx context.Context, playerID string) (string, error) {
	if playerID == "" {
		return "", errors.InvalidArgument("player id is required")
	}

	id, err := r.client.Get(ctx, lookupKey(playerID)).Result()
	if err == redis.Nil {
		return "", errors.NotFoundf("player %s is not in a battle", playerID)
	}
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to look up battle id")
	}

	return id, nil
}

func (r *redisRepo) OpponentOf(ctx context.Context, playerID string) (string, error) {
	if playerID == "" {
		return "", errors.InvalidArgument("player id is required")
	}

	opponent, err := r.client.Get(ctx, lockKey(playerID)).Result()
	if err == redis.Nil {
		return "", errors.NotFoundf("player %s is not in a battle", playerID)
	}
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to look up opponent")
	}

	return opponent, nil
}

func (r *redisRepo) GetState(ctx context.Context, battleID string) (*combat.Battle, error) {
	if battleID == "" {
		return nil, errors.InvalidArgument("battle id is required")
	}

	data, err := r.client.Get(ctx, stateKey(battleID)).Result()
	if err == redis.Nil {
		return nil, errors.NotFoundf("battle %s not found", battleID)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get battle state")
	}

	var battle combat.Battle
	if err := json.Unmarshal([]byte(data), &battle); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal battle state")
	}

	if battle.SchemaVersion != combat.SchemaVersion {
		return nil, errors.NotFoundf("battle %s has incompatible schema version %d", battleID, battle.SchemaVersion)
	}

	return &battle, nil
}

func (r *redisRepo) SaveState(ctx context.Context, battle *combat.Battle) error {
	if battle == nil {
		return errors.InvalidArgument("battle is required")
	}
	if battle.ID == "" {
		return errors.InvalidArgument("battle id is required")
	}

	data, err := json.Marshal(battle)
	if err != nil {
		return errors.Wrap(err, "failed to marshal battle state")
	}

	// The whole record set shares one idle window, refreshed on every save
	// so an active battle never expires mid fight.
	pipe := r.client.Pipeline()
	pipe.Set(ctx, stateKey(battle.ID), data, r.ttl)
	if r.ttl > 0 {
		pipe.Expire(ctx, lockKey(battle.ChallengerID), r.ttl)
		pipe.Expire(ctx, lockKey(battle.OpponentID), r.ttl)
		pipe.Expire(ctx, lookupKey(battle.ChallengerID), r.ttl)
		pipe.Expire(ctx, lookupKey(battle.OpponentID), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save battle state")
	}

	return nil
}
