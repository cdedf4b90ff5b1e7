package cache

import (
	"context"
	"fmt"
	"testing"

	"bus-ticketing-backend/internal/cache"
	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyCounts(t *testing.T, ctx context.Context, inventory cache.VoyageInventoryCache, voyageID, expectedTotal, expectedAvailable int) {
	t.Helper()
	counts, err := inventory.GetCounts(ctx, voyageID)
	assert.NoError(t, err)
	assert.Equal(t, expectedTotal, counts.TotalSeats)
	assert.Equal(t, expectedAvailable, counts.AvailableSeats)
}

func TestVoyageInventoryCache_WarmUp(t *testing.T) {
	ctx := context.Background()
	inventory := cache.NewVoyageInventoryCache(getTestRdb())
	clearRedis(ctx)
	t.Cleanup(func() {
		clearRedis(ctx)
	})

	t.Run("Success", func(t *testing.T) {
		defer clearRedis(ctx)
		err := inventory.WarmUp(ctx, 1, 41, 41)
		require.NoError(t, err)
		verifyCounts(t, ctx, inventory, 1, 41, 41)
	})
}

func TestVoyageInventoryCache_GetCounts(t *testing.T) {
	ctx := context.Background()
	inventory := cache.NewVoyageInventoryCache(getTestRdb())
	clearRedis(ctx)
	t.Cleanup(func() {
		clearRedis(ctx)
	})

	t.Run("Failed - NotWarmedUp", func(t *testing.T) {
		defer clearRedis(ctx)
		_, err := inventory.GetCounts(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrVoyageNotFound)
	})
}

func TestVoyageInventoryCache_AdjustAvailable(t *testing.T) {
	ctx := context.Background()
	inventory := cache.NewVoyageInventoryCache(getTestRdb())
	clearRedis(ctx)
	t.Cleanup(func() {
		clearRedis(ctx)
	})

	t.Run("Success - Decrement", func(t *testing.T) {
		defer clearRedis(ctx)
		require.NoError(t, inventory.WarmUp(ctx, 1, 41, 41))

		err := inventory.AdjustAvailable(ctx, 1, -3)
		require.NoError(t, err)
		verifyCounts(t, ctx, inventory, 1, 41, 38)
	})

	t.Run("Success - Increment", func(t *testing.T) {
		defer clearRedis(ctx)
		require.NoError(t, inventory.WarmUp(ctx, 1, 41, 38))

		err := inventory.AdjustAvailable(ctx, 1, 3)
		require.NoError(t, err)
		verifyCounts(t, ctx, inventory, 1, 41, 41)
	})

	// 未預熱的 key 調整必須回報錯誤，不能憑空生出計數
	t.Run("Failed - NotWarmedUp", func(t *testing.T) {
		defer clearRedis(ctx)
		err := inventory.AdjustAvailable(ctx, 1, -1)
		assert.ErrorIs(t, err, apperrors.ErrVoyageNotFound)
	})

	// 調整後越界代表快取已漂移：自我失效，下次讀取回源資料庫
	t.Run("OutOfRange - SelfInvalidates", func(t *testing.T) {
		defer clearRedis(ctx)
		require.NoError(t, inventory.WarmUp(ctx, 1, 41, 1))

		err := inventory.AdjustAvailable(ctx, 1, -2)
		assert.ErrorIs(t, err, apperrors.ErrConsistencyViolation)

		key := fmt.Sprintf("voyage:%d:counts", 1)
		exists, redisErr := getTestRdb().Exists(ctx, key).Result()
		require.NoError(t, redisErr)
		assert.Zero(t, exists)
	})
}

func TestVoyageInventoryCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	inventory := cache.NewVoyageInventoryCache(getTestRdb())
	clearRedis(ctx)
	t.Cleanup(func() {
		clearRedis(ctx)
	})

	require.NoError(t, inventory.WarmUp(ctx, 1, 41, 41))
	require.NoError(t, inventory.Invalidate(ctx, 1))

	_, err := inventory.GetCounts(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrVoyageNotFound)
}
