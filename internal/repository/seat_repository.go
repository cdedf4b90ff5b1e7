package repository

import (
	"context"
	"time"

	"bus-ticketing-backend/internal/model"
	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SeatRepository interface {
	ListByVoyage(ctx context.Context, voyageID int) ([]*model.Seat, error)
	FindByVoyageAndNumbers(ctx context.Context, voyageID int, numbers []string) ([]*model.Seat, error)
	CountsByState(ctx context.Context, voyageID int) (map[model.SeatState]int, error)

	// Transaction methods
	BulkCreate(ctx context.Context, tx pgx.Tx, voyageID int, numbers []string) (int, error)
	Transition(ctx context.Context, tx pgx.Tx, voyageID int, numbers []string, from, to model.SeatState) ([]string, error)
	CountByStateWithLock(ctx context.Context, tx pgx.Tx, voyageID int, state model.SeatState) (int, error)
}

type SeatRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSeatRepository(pool *pgxpool.Pool) SeatRepository {
	return &SeatRepositoryImpl{
		pool: pool,
	}
}

// BulkCreate 一次插入整張座位圖，全部初始化為 available。
// (voyage_id, number) 唯一索引保證同班次不會重複建立。
func (r *SeatRepositoryImpl) BulkCreate(ctx context.Context, tx pgx.Tx, voyageID int, numbers []string) (int, error) {
	query := `
		INSERT INTO seats (voyage_id, number, state)
		SELECT $1, unnest($2::text[]), 'available'
	`

	result, err := tx.Exec(ctx, query, voyageID, numbers)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrInventoryExists
		}
		return 0, err
	}

	return int(result.RowsAffected()), nil
}

func (r *SeatRepositoryImpl) ListByVoyage(ctx context.Context, voyageID int) ([]*model.Seat, error) {
	query := `
		SELECT id, voyage_id, number, state, created_at, updated_at
		FROM seats
		WHERE voyage_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, voyageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]*model.Seat, 0)

	for rows.Next() {
		var seat model.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.VoyageID,
			&seat.Number,
			&seat.State,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (r *SeatRepositoryImpl) FindByVoyageAndNumbers(ctx context.Context, voyageID int, numbers []string) ([]*model.Seat, error) {
	query := `
		SELECT id, voyage_id, number, state, created_at, updated_at
		FROM seats
		WHERE voyage_id = $1 AND number = ANY($2)
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, voyageID, numbers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]*model.Seat, 0)

	for rows.Next() {
		var seat model.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.VoyageID,
			&seat.Number,
			&seat.State,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

// Transition 條件式批次轉換：只翻轉目前在 from 狀態的座位，回傳實際翻轉的座位號。
// 這是 compare-and-set 而不是盲寫，兩個併發請求搶同一個座位只會有一個成功，
// 輸家會看到該座位不在回傳清單中。
func (r *SeatRepositoryImpl) Transition(ctx context.Context, tx pgx.Tx, voyageID int, numbers []string, from, to model.SeatState) ([]string, error) {
	query := `
		UPDATE seats
		SET state = $1, updated_at = $2
		WHERE voyage_id = $3 AND number = ANY($4) AND state = $5
		RETURNING number
	`

	rows, err := tx.Query(ctx, query, to, time.Now().UTC(), voyageID, numbers, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changed := make([]string, 0, len(numbers))

	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, err
		}
		changed = append(changed, number)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return changed, nil
}

func (r *SeatRepositoryImpl) CountsByState(ctx context.Context, voyageID int) (map[model.SeatState]int, error) {
	query := `
		SELECT state, COUNT(*)
		FROM seats
		WHERE voyage_id = $1
		GROUP BY state
	`

	rows, err := r.pool.Query(ctx, query, voyageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.SeatState]int)

	for rows.Next() {
		var state model.SeatState
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		counts[state] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// CountByStateWithLock 在交易內鎖定該狀態的座位列後計數，供 reconcile 重算使用。
func (r *SeatRepositoryImpl) CountByStateWithLock(ctx context.Context, tx pgx.Tx, voyageID int, state model.SeatState) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM (
			SELECT id
			FROM seats
			WHERE voyage_id = $1 AND state = $2
			FOR UPDATE
		) locked
	`

	var count int
	err := tx.QueryRow(ctx, query, voyageID, state).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
