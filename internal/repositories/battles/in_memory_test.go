package battles_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/shinobi"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/repositories/battles"
)

func newTestBattle(id string) *combat.Battle {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	challenger := shinobi.NewPlayer("user-1", "naruto", "konoha")
	opponent := shinobi.NewPlayer("user-2", "gaara", "suna")
	return combat.NewBattle(id, challenger, opponent, now)
}

func TestInMemoryRepository_LockLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := battles.NewInMemoryRepository(&battles.InMemoryConfig{TTL: time.Minute})

	require.NoError(t, repo.AcquireLocks(ctx, "battle-1", "user-1", "user-2"))

	id, err := repo.BattleIDFor(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "battle-1", id)

	opponent, err := repo.OpponentOf(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, "user-1", opponent)

	// Either participant being locked blocks a new battle.
	err = repo.AcquireLocks(ctx, "battle-2", "user-1", "user-3")
	require.Error(t, err)
	assert.True(t, errors.IsBusy(err))

	err = repo.AcquireLocks(ctx, "battle-2", "user-3", "user-2")
	require.Error(t, err)
	assert.True(t, errors.IsBusy(err))

	require.NoError(t, repo.ReleaseLocks(ctx, "battle-1", "user-1", "user-2"))

	_, err = repo.BattleIDFor(ctx, "user-1")
	assert.True(t, errors.IsNotFound(err))

	// Release is idempotent.
	require.NoError(t, repo.ReleaseLocks(ctx, "battle-1", "user-1", "user-2"))

	// Both players are free to battle again.
	require.NoError(t, repo.AcquireLocks(ctx, "battle-2", "user-1", "user-2"))
}

func TestInMemoryRepository_FailedAcquisitionLeavesNoPartialLocks(t *testing.T) {
	ctx := context.Background()
	repo := battles.NewInMemoryRepository(&battles.InMemoryConfig{TTL: time.Minute})

	require.NoError(t, repo.AcquireLocks(ctx, "battle-1", "user-2", "user-3"))

	err := repo.AcquireLocks(ctx, "battle-2", "user-1", "user-2")
	require.Error(t, err)
	assert.True(t, errors.IsBusy(err))

	// user-1 must not be left locked by the failed attempt.
	_, err = repo.BattleIDFor(ctx, "user-1")
	assert.True(t, errors.IsNotFound(err))
}

func TestInMemoryRepository_StateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := battles.NewInMemoryRepository(&battles.InMemoryConfig{TTL: time.Minute})

	battle := newTestBattle("battle-1")
	require.NoError(t, repo.AcquireLocks(ctx, "battle-1", "user-1", "user-2"))
	require.NoError(t, repo.SaveState(ctx, battle))

	got, err := repo.GetState(ctx, "battle-1")
	require.NoError(t, err)
	assert.Equal(t, battle.ID, got.ID)
	assert.Equal(t, battle.TurnHolder, got.TurnHolder)

	// Stored state is a snapshot, not a shared pointer.
	got.TurnCount = 99
	reread, err := repo.GetState(ctx, "battle-1")
	require.NoError(t, err)
	assert.Equal(t, battle.TurnCount, reread.TurnCount)
}

func TestInMemoryRepository_GetState_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := battles.NewInMemoryRepository(nil)

	_, err := repo.GetState(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestInMemoryRepository_ExpiryReleasesEverything(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := battles.NewInMemoryRepository(&battles.InMemoryConfig{
		TTL:   time.Minute,
		Clock: func() time.Time { return now },
	})

	battle := newTestBattle("battle-1")
	require.NoError(t, repo.AcquireLocks(ctx, "battle-1", "user-1", "user-2"))
	require.NoError(t, repo.SaveState(ctx, battle))

	now = now.Add(2 * time.Minute)

	_, err := repo.GetState(ctx, "battle-1")
	assert.True(t, errors.IsNotFound(err))
	_, err = repo.BattleIDFor(ctx, "user-1")
	assert.True(t, errors.IsNotFound(err))
	_, err = repo.OpponentOf(ctx, "user-2")
	assert.True(t, errors.IsNotFound(err))

	// Expired locks no longer block a fresh battle.
	require.NoError(t, repo.AcquireLocks(ctx, "battle-2", "user-1", "user-2"))
}

func TestInMemoryRepository_SaveRefreshesExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := battles.NewInMemoryRepository(&battles.InMemoryConfig{
		TTL:   time.Minute,
		Clock: func() time.Time { return now },
	})

	battle := newTestBattle("battle-1")
	require.NoError(t, repo.AcquireLocks(ctx, "battle-1", "user-1", "user-2"))
	require.NoError(t, repo.SaveState(ctx, battle))

	// Each save pushes the idle window out again.
	now = now.Add(45 * time.Second)
	require.NoError(t, repo.SaveState(ctx, battle))

	now = now.Add(45 * time.Second)
	_, err := repo.GetState(ctx, "battle-1")
	require.NoError(t, err)
}
