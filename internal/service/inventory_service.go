package service

import (
	"context"

	"bus-ticketing-backend/internal/cache"
	"bus-ticketing-backend/internal/model"
	"bus-ticketing-backend/internal/repository"
	"bus-ticketing-backend/internal/seatmap"
	apperrors "bus-ticketing-backend/pkg/app_errors"
	"bus-ticketing-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type InventoryService interface {
	// CreateInventory 建立班次庫存：庫存記錄 + 整張座位圖，一次性，同交易。
	CreateInventory(ctx context.Context, req model.CreateInventoryRequest) (*model.VoyageInventory, []*model.Seat, error)
	List(ctx context.Context) ([]*model.VoyageInventory, error)
	GetByVoyageID(ctx context.Context, voyageID uuid.UUID) (*model.VoyageInventory, error)
	ListSeats(ctx context.Context, voyageID uuid.UUID) (*model.SeatMapResponse, error)
	UpdateStatus(ctx context.Context, voyageID uuid.UUID, status model.VoyageStatus) (*model.VoyageInventory, error)
	// Reconcile 由座位狀態重算 available_seats（內部 id，供 worker 使用）
	Reconcile(ctx context.Context, id int) (*model.ReconcileResult, error)
	ReconcileByVoyageID(ctx context.Context, voyageID uuid.UUID) (*model.ReconcileResult, error)
}

type InventoryServiceImpl struct {
	pool           *pgxpool.Pool
	repository     repository.VoyageInventoryRepository
	seatRepository repository.SeatRepository
	inventoryCache cache.VoyageInventoryCache
}

func NewInventoryService(
	pool *pgxpool.Pool,
	inventoryRepository repository.VoyageInventoryRepository,
	seatRepository repository.SeatRepository,
	inventoryCache cache.VoyageInventoryCache,
) InventoryService {
	return &InventoryServiceImpl{
		pool:           pool,
		repository:     inventoryRepository,
		seatRepository: seatRepository,
		inventoryCache: inventoryCache,
	}
}

func (s *InventoryServiceImpl) CreateInventory(ctx context.Context, req model.CreateInventoryRequest) (*model.VoyageInventory, []*model.Seat, error) {
	layout, err := seatmap.Resolve(req.Layout, req.Rows, req.Columns, req.TotalSeats)
	if err != nil {
		return nil, nil, err
	}

	numbers := layout.Numbers()
	total := layout.TotalSeats()

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	inventory := &model.VoyageInventory{
		VoyageID:       req.VoyageID,
		RouteName:      req.RouteName,
		BusPlateNo:     req.BusPlateNo,
		Driver:         req.Driver,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		Status:         model.VoyageStatusActive,
		TotalSeats:     total,
		AvailableSeats: total,
	}

	created, err := s.repository.Create(ctx, tx, inventory)
	if err != nil {
		return nil, nil, err
	}

	// 整張座位圖與庫存記錄同交易寫入，任何一步失敗就什麼都不建立
	if _, err := s.seatRepository.BulkCreate(ctx, tx, created.ID, numbers); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	// 快取預熱是 best effort：失敗只記錄，讀取會回源資料庫
	if err := s.inventoryCache.WarmUp(ctx, created.ID, total, total); err != nil {
		logger.WithComponent("service").Warn("inventory cache warm up failed",
			zap.Int("voyage_id", created.ID), zap.Error(err))
	}

	seats, err := s.seatRepository.ListByVoyage(ctx, created.ID)
	if err != nil {
		return nil, nil, err
	}

	return created, seats, nil
}

func (s *InventoryServiceImpl) List(ctx context.Context) ([]*model.VoyageInventory, error) {
	return s.repository.List(ctx)
}

func (s *InventoryServiceImpl) GetByVoyageID(ctx context.Context, voyageID uuid.UUID) (*model.VoyageInventory, error) {
	return s.repository.FindByVoyageID(ctx, voyageID)
}

func (s *InventoryServiceImpl) ListSeats(ctx context.Context, voyageID uuid.UUID) (*model.SeatMapResponse, error) {
	inventory, err := s.repository.FindByVoyageID(ctx, voyageID)
	if err != nil {
		return nil, err
	}

	seats, err := s.seatRepository.ListByVoyage(ctx, inventory.ID)
	if err != nil {
		return nil, err
	}

	infos := make([]model.SeatInfo, 0, len(seats))
	selected := 0
	booked := 0
	for _, seat := range seats {
		infos = append(infos, model.SeatInfo{Number: seat.Number, State: seat.State})
		switch seat.State {
		case model.SeatStateSelected:
			selected++
		case model.SeatStateBooked:
			booked++
		}
	}

	available := inventory.AvailableSeats
	// 計數優先走快取，未預熱或讀取失敗就用資料庫的權威值
	if counts, err := s.inventoryCache.GetCounts(ctx, inventory.ID); err == nil {
		available = counts.AvailableSeats
	}

	return &model.SeatMapResponse{
		VoyageID:       inventory.VoyageID.String(),
		Status:         string(inventory.Status),
		TotalSeats:     inventory.TotalSeats,
		AvailableSeats: available,
		SelectedSeats:  selected,
		BookedSeats:    booked,
		Seats:          infos,
	}, nil
}

func (s *InventoryServiceImpl) UpdateStatus(ctx context.Context, voyageID uuid.UUID, status model.VoyageStatus) (*model.VoyageInventory, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}

	inventory, err := s.repository.FindByVoyageID(ctx, voyageID)
	if err != nil {
		return nil, err
	}

	if !inventory.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidTransition
	}

	return s.repository.UpdateStatus(ctx, inventory.ID, status)
}

// Reconcile 在單一交易內鎖定庫存列與座位列，重算 available_seats 並回寫。
// 任何懷疑部分失敗的情況都可以用它恢復不變量。
// selected 只是暫時保留、不是賣出，所以重算基準是總席次減去已訂席次。
func (s *InventoryServiceImpl) Reconcile(ctx context.Context, id int) (*model.ReconcileResult, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inventory, err := s.repository.FindByIDWithLock(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	booked, err := s.seatRepository.CountByStateWithLock(ctx, tx, id, model.SeatStateBooked)
	if err != nil {
		return nil, err
	}
	recomputed := inventory.TotalSeats - booked

	if err := s.repository.SetAvailable(ctx, tx, id, recomputed); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	drift := recomputed - inventory.AvailableSeats
	if drift != 0 {
		logger.WithComponent("service").Warn("inventory drift corrected",
			zap.Int("voyage_id", id),
			zap.Int("previous", inventory.AvailableSeats),
			zap.Int("recomputed", recomputed))
	}

	if err := s.inventoryCache.WarmUp(ctx, id, inventory.TotalSeats, recomputed); err != nil {
		logger.WithComponent("service").Warn("inventory cache refresh failed",
			zap.Int("voyage_id", id), zap.Error(err))
	}

	return &model.ReconcileResult{
		VoyageID:            inventory.VoyageID.String(),
		PreviousAvailable:   inventory.AvailableSeats,
		RecomputedAvailable: recomputed,
		Drift:               drift,
	}, nil
}

func (s *InventoryServiceImpl) ReconcileByVoyageID(ctx context.Context, voyageID uuid.UUID) (*model.ReconcileResult, error) {
	inventory, err := s.repository.FindByVoyageID(ctx, voyageID)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, inventory.ID)
}
