package cache

import (
	"context"
	"fmt"
	"strconv"

	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

// VoyageCounts 班次座位計數快照
type VoyageCounts struct {
	TotalSeats     int
	AvailableSeats int
}

// VoyageInventoryCache 班次庫存讀取快取。
// 資料庫永遠是權威來源：快取只服務熱路徑的計數讀取，
// 任何不一致都可以透過 Invalidate + reconcile 恢復。
type VoyageInventoryCache interface {
	// 預熱：建立庫存後寫入計數
	WarmUp(ctx context.Context, voyageID int, total int, available int) error
	// 獲取：讀取班次計數，未預熱時回傳 ErrVoyageNotFound
	GetCounts(ctx context.Context, voyageID int) (VoyageCounts, error)
	// 調整：以相對增量調整 available (使用Lua腳本確保只在 key 存在時生效)
	AdjustAvailable(ctx context.Context, voyageID int, delta int) error
	// 失效：移除快取，下次讀取回源資料庫
	Invalidate(ctx context.Context, voyageID int) error
}

type VoyageInventoryCacheImpl struct {
	client *redis.Client
}

func NewVoyageInventoryCache(client *redis.Client) VoyageInventoryCache {
	return &VoyageInventoryCacheImpl{
		client: client,
	}
}

func (c *VoyageInventoryCacheImpl) getCountsKey(voyageID int) string {
	return fmt.Sprintf("voyage:%d:counts", voyageID)
}

func (c *VoyageInventoryCacheImpl) WarmUp(ctx context.Context, voyageID int, total int, available int) error {
	key := c.getCountsKey(voyageID)
	return c.client.HSet(ctx, key, map[string]interface{}{
		"total":     total,
		"available": available,
	}).Err()
}

func (c *VoyageInventoryCacheImpl) GetCounts(ctx context.Context, voyageID int) (VoyageCounts, error) {
	key := c.getCountsKey(voyageID)
	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return VoyageCounts{}, err
	}

	// 檢查 key 是否存在
	if len(result) == 0 {
		return VoyageCounts{}, apperrors.ErrVoyageNotFound
	}

	total, err := strconv.Atoi(result["total"])
	if err != nil {
		return VoyageCounts{}, fmt.Errorf("invalid total: %v", err)
	}

	available, err := strconv.Atoi(result["available"])
	if err != nil {
		return VoyageCounts{}, fmt.Errorf("invalid available: %v", err)
	}

	return VoyageCounts{
		TotalSeats:     total,
		AvailableSeats: available,
	}, nil
}

// AdjustAvailable 只在 key 已預熱時調整，避免 HINCRBY 在未預熱的班次
// 留下殘缺的 hash。調整後越界代表快取已經漂移，直接刪除讓讀取回源。
func (c *VoyageInventoryCacheImpl) AdjustAvailable(ctx context.Context, voyageID int, delta int) error {
	key := c.getCountsKey(voyageID)

	script := `
		local key = KEYS[1]
		local delta = tonumber(ARGV[1])

		if redis.call('EXISTS', key) == 0 then
			return 0
		end

		local total = tonumber(redis.call('HGET', key, 'total'))
		local available = redis.call('HINCRBY', key, 'available', delta)

		if available < 0 or available > total then
			redis.call('DEL', key)
			return -1
		end

		return 1
	`

	result, err := c.client.Eval(ctx, script, []string{key}, delta).Int()
	if err != nil {
		return err
	}

	switch result {
	case 0:
		return apperrors.ErrVoyageNotFound
	case -1:
		return apperrors.ErrConsistencyViolation
	}
	return nil
}

func (c *VoyageInventoryCacheImpl) Invalidate(ctx context.Context, voyageID int) error {
	key := c.getCountsKey(voyageID)
	return c.client.Del(ctx, key).Err()
}
