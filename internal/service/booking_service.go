package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"bus-ticketing-backend/internal/cache"
	"bus-ticketing-backend/internal/model"
	"bus-ticketing-backend/internal/queue"
	"bus-ticketing-backend/internal/repository"
	"bus-ticketing-backend/pkg/logger"

	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// BookingService 座位訂位引擎。
// 每個操作都是單一資料庫交易：座位狀態、車票、彙總計數要嘛一起提交，要嘛一起回滾。
type BookingService interface {
	// SelectSeats 暫留座位 (available → selected)，不動計數
	SelectSeats(ctx context.Context, voyageID uuid.UUID, numbers []string) (*model.SeatOperationResult, error)
	// DeselectSeats 釋放暫留 (selected → available)，不動計數
	DeselectSeats(ctx context.Context, voyageID uuid.UUID, numbers []string) (*model.SeatOperationResult, error)
	// Book 訂位：可從 available 直接訂，或確認先前的 selected
	Book(ctx context.Context, voyageID uuid.UUID, req model.BookSeatsRequest) (*model.SeatOperationResult, error)
	// Cancel 取消訂位：座位回到 available、車票軟刪除、計數加回
	Cancel(ctx context.Context, voyageID uuid.UUID, numbers []string) (*model.SeatOperationResult, error)
}

type BookingServiceImpl struct {
	pool                *pgxpool.Pool
	inventoryRepository repository.VoyageInventoryRepository
	seatRepository      repository.SeatRepository
	ticketRepository    repository.TicketRepository
	passengerRepository repository.PassengerRepository
	inventoryCache      cache.VoyageInventoryCache
	reconcileQueue      queue.ReconcileQueue
}

func NewBookingService(
	pool *pgxpool.Pool,
	inventoryRepository repository.VoyageInventoryRepository,
	seatRepository repository.SeatRepository,
	ticketRepository repository.TicketRepository,
	passengerRepository repository.PassengerRepository,
	inventoryCache cache.VoyageInventoryCache,
	reconcileQueue queue.ReconcileQueue,
) BookingService {
	return &BookingServiceImpl{
		pool:                pool,
		inventoryRepository: inventoryRepository,
		seatRepository:      seatRepository,
		ticketRepository:    ticketRepository,
		passengerRepository: passengerRepository,
		inventoryCache:      inventoryCache,
		reconcileQueue:      reconcileQueue,
	}
}

// normalizeSeatNumbers 去除空白並擋下空值與重複的座位號
func normalizeSeatNumbers(numbers []string) ([]string, error) {
	if len(numbers) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	seen := make(map[string]struct{}, len(numbers))
	normalized := make([]string, 0, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, apperrors.ErrInvalidInput
		}
		if _, ok := seen[n]; ok {
			return nil, apperrors.ErrInvalidInput
		}
		seen[n] = struct{}{}
		normalized = append(normalized, n)
	}
	return normalized, nil
}

// ensureSeatsExist 區分「座位不存在」與「座位狀態衝突」：
// 請求裡有任何不屬於該班次的座位號就直接拒絕。
func (s *BookingServiceImpl) ensureSeatsExist(ctx context.Context, voyageID int, numbers []string) error {
	seats, err := s.seatRepository.FindByVoyageAndNumbers(ctx, voyageID, numbers)
	if err != nil {
		return err
	}
	if len(seats) != len(numbers) {
		return apperrors.ErrSeatNotFound
	}
	return nil
}

func (s *BookingServiceImpl) SelectSeats(ctx context.Context, voyageID uuid.UUID, numbers []string) (*model.SeatOperationResult, error) {
	return s.holdTransition(ctx, voyageID, numbers, model.SeatStateAvailable, model.SeatStateSelected)
}

func (s *BookingServiceImpl) DeselectSeats(ctx context.Context, voyageID uuid.UUID, numbers []string) (*model.SeatOperationResult, error) {
	return s.holdTransition(ctx, voyageID, numbers, model.SeatStateSelected, model.SeatStateAvailable)
}

// holdTransition 選位與退選共用：純座位狀態轉換，不建票、不動計數。
func (s *BookingServiceImpl) holdTransition(ctx context.Context, voyageID uuid.UUID, numbers []string, from, to model.SeatState) (*model.SeatOperationResult, error) {
	numbers, err := normalizeSeatNumbers(numbers)
	if err != nil {
		return nil, err
	}

	inventory, err := s.inventoryRepository.FindByVoyageID(ctx, voyageID)
	if err != nil {
		return nil, err
	}

	// 只有可售班次能建立新的選位；退選不受班次狀態限制
	if to == model.SeatStateSelected && !inventory.Status.IsBookable() {
		return nil, apperrors.ErrVoyageNotBookable
	}

	if err := s.ensureSeatsExist(ctx, inventory.ID, numbers); err != nil {
		return nil, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	changed, err := s.seatRepository.Transition(ctx, tx, inventory.ID, numbers, from, to)
	if err != nil {
		return nil, err
	}
	if len(changed) != len(numbers) {
		// 有座位不在要求的狀態：整個操作放棄，不留部分效果
		return nil, apperrors.NewSeatConflict(numbers, changed)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &model.SeatOperationResult{
		VoyageID:       inventory.VoyageID.String(),
		AffectedSeats:  changed,
		TotalSeats:     inventory.TotalSeats,
		AvailableSeats: inventory.AvailableSeats,
		BookedSeats:    inventory.BookedSeats(),
	}, nil
}

func (s *BookingServiceImpl) Book(ctx context.Context, voyageID uuid.UUID, req model.BookSeatsRequest) (*model.SeatOperationResult, error) {
	numbers, err := normalizeSeatNumbers(req.SeatNumbers)
	if err != nil {
		return nil, err
	}

	paymentStatus := model.PaymentStatusPending
	if req.PaymentStatus != "" {
		paymentStatus = model.PaymentStatus(req.PaymentStatus)
		if !paymentStatus.IsValid() {
			return nil, apperrors.ErrInvalidInput
		}
	}

	fromState := model.SeatStateAvailable
	if req.FromSelection {
		fromState = model.SeatStateSelected
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1. 鎖定庫存列：取得權威計數並讓計數調整序列化
	inventory, err := s.inventoryRepository.FindByVoyageIDWithLock(ctx, tx, voyageID)
	if err != nil {
		return nil, err
	}

	if !inventory.Status.IsBookable() {
		return nil, apperrors.ErrVoyageNotBookable
	}

	// 2. 彙總層容量檢查
	if inventory.AvailableSeats < len(numbers) {
		return nil, apperrors.ErrInsufficientSeats
	}

	if err := s.ensureSeatsExist(ctx, inventory.ID, numbers); err != nil {
		return nil, err
	}

	// 3. 條件式座位轉換：數量不符就是衝突，交易回滾、不留部分效果
	changed, err := s.seatRepository.Transition(ctx, tx, inventory.ID, numbers, fromState, model.SeatStateBooked)
	if err != nil {
		return nil, err
	}
	if len(changed) != len(numbers) {
		return nil, apperrors.NewSeatConflict(numbers, changed)
	}

	// 4. 乘客與車票：每個座位一張票，車票與座位同交易生效
	passenger, err := s.passengerRepository.FindOrCreate(ctx, tx, &model.Passenger{
		VoyageID: inventory.ID,
		Name:     strings.TrimSpace(req.PassengerName),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    req.Email,
	})
	if err != nil {
		return nil, err
	}

	ticketIDs := make([]string, 0, len(numbers))
	for _, number := range numbers {
		ticket, err := s.ticketRepository.Create(ctx, tx, &model.Ticket{
			TicketID:      uuid.New(),
			VoyageID:      inventory.ID,
			PassengerID:   passenger.ID,
			PassengerName: passenger.Name,
			SeatNumber:    number,
			Fare:          req.Fare,
			IssuedBy:      req.IssuedBy,
			PaymentStatus: paymentStatus,
		})
		if err != nil {
			return nil, err
		}
		ticketIDs = append(ticketIDs, ticket.TicketID.String())
	}

	// 5. 彙總計數：永遠是相對增量，越界是致命的一致性錯誤
	if err := s.inventoryRepository.AdjustAvailable(ctx, tx, inventory.ID, -len(numbers)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.adjustCacheOrReconcile(ctx, inventory.ID, -len(numbers))

	return &model.SeatOperationResult{
		VoyageID:       inventory.VoyageID.String(),
		AffectedSeats:  changed,
		TotalSeats:     inventory.TotalSeats,
		AvailableSeats: inventory.AvailableSeats - len(numbers),
		BookedSeats:    inventory.BookedSeats() + len(numbers),
		TicketIDs:      ticketIDs,
	}, nil
}

func (s *BookingServiceImpl) Cancel(ctx context.Context, voyageID uuid.UUID, numbers []string) (*model.SeatOperationResult, error) {
	numbers, err := normalizeSeatNumbers(numbers)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inventory, err := s.inventoryRepository.FindByVoyageIDWithLock(ctx, tx, voyageID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureSeatsExist(ctx, inventory.ID, numbers); err != nil {
		return nil, err
	}

	// 1. booked → available，條件式轉換
	changed, err := s.seatRepository.Transition(ctx, tx, inventory.ID, numbers, model.SeatStateBooked, model.SeatStateAvailable)
	if err != nil {
		return nil, err
	}
	if len(changed) != len(numbers) {
		return nil, apperrors.NewSeatConflict(numbers, changed)
	}

	// 2. 座位對應的車票同交易軟刪除；booked 座位沒有車票代表不變量已破
	deleted, err := s.ticketRepository.DeleteBySeatNumbers(ctx, tx, inventory.ID, numbers)
	if err != nil {
		return nil, err
	}
	if deleted != len(numbers) {
		logger.WithComponent("service").Error("booked seats without tickets",
			zap.Int("voyage_id", inventory.ID),
			zap.Int("expected", len(numbers)),
			zap.Int("deleted", deleted))
		return nil, apperrors.ErrConsistencyViolation
	}

	// 3. 計數加回
	if err := s.inventoryRepository.AdjustAvailable(ctx, tx, inventory.ID, len(numbers)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.adjustCacheOrReconcile(ctx, inventory.ID, len(numbers))

	return &model.SeatOperationResult{
		VoyageID:       inventory.VoyageID.String(),
		AffectedSeats:  changed,
		TotalSeats:     inventory.TotalSeats,
		AvailableSeats: inventory.AvailableSeats + len(numbers),
		BookedSeats:    inventory.BookedSeats() - len(numbers),
	}, nil
}

// adjustCacheOrReconcile 交易提交後調整讀取快取。
// 快取更新失敗不影響已提交的結果，改排一筆 reconcile 讓 worker 修復。
// PublishJob 使用 context.Background()：請求結束也要確保送出。
func (s *BookingServiceImpl) adjustCacheOrReconcile(ctx context.Context, voyageID int, delta int) {
	if err := s.inventoryCache.AdjustAvailable(ctx, voyageID, delta); err != nil {
		if errors.Is(err, apperrors.ErrVoyageNotFound) {
			// 未預熱不算不一致：讀取會回源資料庫
			return
		}
		logger.WithComponent("service").Warn("inventory cache adjust failed, scheduling reconcile",
			zap.Int("voyage_id", voyageID), zap.Int("delta", delta), zap.Error(err))
		job := &queue.ReconcileJob{
			VoyageID:    voyageID,
			Reason:      "cache adjust failed",
			RequestedAt: time.Now().UTC(),
		}
		if err := s.reconcileQueue.PublishJob(context.Background(), job); err != nil {
			logger.WithComponent("service").Error("failed to publish reconcile job",
				zap.Int("voyage_id", voyageID), zap.Error(err))
		}
	}
}
