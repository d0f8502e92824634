package players

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
	gameerr "github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.repo = NewRedisRepository(&RedisRepoConfig{Client: s.mockClient})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) testPlayer() *shinobi.Player {
	return shinobi.NewPlayer("user-1", "Hana", "konoha")
}

func (s *RedisRepoTestSuite) TestSave() {
	ctx := context.Background()
	player := s.testPlayer()

	expectedData, err := json.Marshal(player)
	s.Require().NoError(err)

	s.mock.ExpectSet("player:user-1", expectedData, 0).SetVal("OK")

	s.NoError(s.repo.Save(ctx, player))
}

func (s *RedisRepoTestSuite) TestSave_Validation() {
	ctx := context.Background()

	s.Error(s.repo.Save(ctx, nil))
	s.Error(s.repo.Save(ctx, &shinobi.Player{}))
}

func (s *RedisRepoTestSuite) TestSave_DependencyError() {
	ctx := context.Background()
	player := s.testPlayer()

	expectedData, err := json.Marshal(player)
	s.Require().NoError(err)

	s.mock.ExpectSet("player:user-1", expectedData, 0).SetErr(errors.New("redis down"))

	err = s.repo.Save(ctx, player)
	s.Error(err)
	s.Equal(gameerr.CodeUnavailable, gameerr.GetCode(err))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	player := s.testPlayer()

	data, err := json.Marshal(player)
	s.Require().NoError(err)

	s.mock.ExpectGet("player:user-1").SetVal(string(data))

	got, err := s.repo.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(player.Username, got.Username)
	s.Equal(player.MaxHP, got.MaxHP)
	s.Equal(player.KnownJutsu, got.KnownJutsu)
}

func (s *RedisRepoTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	s.mock.ExpectGet("player:missing").RedisNil()

	got, err := s.repo.Get(ctx, "missing")
	s.Nil(got)
	s.Require().Error(err)
	s.True(gameerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()

	s.mock.ExpectDel("player:user-1").SetVal(1)
	s.NoError(s.repo.Delete(ctx, "user-1"))

	// Deleting a missing key is still fine.
	s.mock.ExpectDel("player:ghost").SetVal(0)
	s.NoError(s.repo.Delete(ctx, "ghost"))
}
