package battles

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx        context.Context
	redisMock  redismock.ClientMock
	repository Repository
	ttl        time.Duration
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	client, redisMock := redismock.NewClientMock()
	s.redisMock = redisMock
	s.ttl = 10 * time.Minute
	s.repository = NewRedisRepository(&RedisRepoConfig{
		Client: client,
		TTL:    s.ttl,
	})
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.NoError(s.redisMock.ExpectationsWereMet())
}

func (s *RedisRepositoryTestSuite) testBattle() *combat.Battle {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	challenger := shinobi.NewPlayer("user-1", "naruto", "konoha")
	opponent := shinobi.NewPlayer("user-2", "gaara", "suna")
	return combat.NewBattle("battle-123", challenger, opponent, now)
}

func (s *RedisRepositoryTestSuite) TestAcquireLocks() {
	s.redisMock.ExpectSetNX("battle_lock:user-1", "user-2", s.ttl).SetVal(true)
	s.redisMock.ExpectSetNX("battle_lock:user-2", "user-1", s.ttl).SetVal(true)
	s.redisMock.ExpectSet("user_battle:user-1", "battle-123", s.ttl).SetVal("OK")
	s.redisMock.ExpectSet("user_battle:user-2", "battle-123", s.ttl).SetVal("OK")

	err := s.repository.AcquireLocks(s.ctx, "battle-123", "user-1", "user-2")
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestAcquireLocks_OpponentBusy() {
	s.redisMock.ExpectSetNX("battle_lock:user-1", "user-2", s.ttl).SetVal(true)
	s.redisMock.ExpectSetNX("battle_lock:user-2", "user-1", s.ttl).SetVal(false)
	// Only the lock this attempt created is rolled back.
	s.redisMock.ExpectDel("battle_lock:user-1").SetVal(1)

	err := s.repository.AcquireLocks(s.ctx, "battle-123", "user-1", "user-2")
	s.Error(err)
	s.True(errors.IsBusy(err))
	s.Contains(err.Error(), "user-2")
}

func (s *RedisRepositoryTestSuite) TestAcquireLocks_ChallengerBusy() {
	s.redisMock.ExpectSetNX("battle_lock:user-1", "user-2", s.ttl).SetVal(false)
	s.redisMock.ExpectSetNX("battle_lock:user-2", "user-1", s.ttl).SetVal(true)
	s.redisMock.ExpectDel("battle_lock:user-2").SetVal(1)

	err := s.repository.AcquireLocks(s.ctx, "battle-123", "user-1", "user-2")
	s.Error(err)
	s.True(errors.IsBusy(err))
	s.Contains(err.Error(), "user-1")
}

func (s *RedisRepositoryTestSuite) TestAcquireLocks_BothBusy() {
	s.redisMock.ExpectSetNX("battle_lock:user-1", "user-2", s.ttl).SetVal(false)
	s.redisMock.ExpectSetNX("battle_lock:user-2", "user-1", s.ttl).SetVal(false)

	err := s.repository.AcquireLocks(s.ctx, "battle-123", "user-1", "user-2")
	s.Error(err)
	s.True(errors.IsBusy(err))
}

func (s *RedisRepositoryTestSuite) TestAcquireLocks_Validation() {
	err := s.repository.AcquireLocks(s.ctx, "", "user-1", "user-2")
	s.Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))

	err = s.repository.AcquireLocks(s.ctx, "battle-123", "", "user-2")
	s.Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *RedisRepositoryTestSuite) TestReleaseLocks() {
	s.redisMock.ExpectDel(
		"battle_state:battle-123",
		"battle_lock:user-1", "user_battle:user-1",
		"battle_lock:user-2", "user_battle:user-2",
	).SetVal(5)

	err := s.repository.ReleaseLocks(s.ctx, "battle-123", "user-1", "user-2")
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestReleaseLocks_AlreadyReleased() {
	s.redisMock.ExpectDel(
		"battle_state:battle-123",
		"battle_lock:user-1", "user_battle:user-1",
		"battle_lock:user-2", "user_battle:user-2",
	).SetVal(0)

	err := s.repository.ReleaseLocks(s.ctx, "battle-123", "user-1", "user-2")
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestBattleIDFor() {
	s.redisMock.ExpectGet("user_battle:user-1").SetVal("battle-123")

	id, err := s.repository.BattleIDFor(s.ctx, "user-1")
	s.NoError(err)
	s.Equal("battle-123", id)
}

func (s *RedisRepositoryTestSuite) TestBattleIDFor_NotInBattle() {
	s.redisMock.ExpectGet("user_battle:user-1").RedisNil()

	_, err := s.repository.BattleIDFor(s.ctx, "user-1")
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestOpponentOf() {
	s.redisMock.ExpectGet("battle_lock:user-1").SetVal("user-2")

	opponent, err := s.repository.OpponentOf(s.ctx, "user-1")
	s.NoError(err)
	s.Equal("user-2", opponent)
}

func (s *RedisRepositoryTestSuite) TestGetState() {
	battle := s.testBattle()
	data, err := json.Marshal(battle)
	s.Require().NoError(err)

	s.redisMock.ExpectGet("battle_state:battle-123").SetVal(string(data))

	got, err := s.repository.GetState(s.ctx, "battle-123")
	s.NoError(err)
	s.Equal("battle-123", got.ID)
	s.Equal("user-1", got.ChallengerID)
	s.Equal("user-2", got.OpponentID)
	s.Equal(combat.SchemaVersion, got.SchemaVersion)
}

func (s *RedisRepositoryTestSuite) TestGetState_NotFound() {
	s.redisMock.ExpectGet("battle_state:battle-123").RedisNil()

	_, err := s.repository.GetState(s.ctx, "battle-123")
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetState_IncompatibleSchema() {
	battle := s.testBattle()
	battle.SchemaVersion = combat.SchemaVersion + 1
	data, err := json.Marshal(battle)
	s.Require().NoError(err)

	s.redisMock.ExpectGet("battle_state:battle-123").SetVal(string(data))

	_, err = s.repository.GetState(s.ctx, "battle-123")
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveState() {
	battle := s.testBattle()
	data, err := json.Marshal(battle)
	s.Require().NoError(err)

	s.redisMock.ExpectSet("battle_state:battle-123", data, s.ttl).SetVal("OK")
	s.redisMock.ExpectExpire("battle_lock:user-1", s.ttl).SetVal(true)
	s.redisMock.ExpectExpire("battle_lock:user-2", s.ttl).SetVal(true)
	s.redisMock.ExpectExpire("user_battle:user-1", s.ttl).SetVal(true)
	s.redisMock.ExpectExpire("user_battle:user-2", s.ttl).SetVal(true)

	err = s.repository.SaveState(s.ctx, battle)
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestSaveState_Validation() {
	err := s.repository.SaveState(s.ctx, nil)
	s.Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
