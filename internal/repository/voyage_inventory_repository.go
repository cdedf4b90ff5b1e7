package repository

import (
	"context"
	"time"

	"bus-ticketing-backend/internal/model"
	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VoyageInventoryRepository interface {
	List(ctx context.Context) ([]*model.VoyageInventory, error)
	FindByID(ctx context.Context, id int) (*model.VoyageInventory, error)
	FindByVoyageID(ctx context.Context, voyageID uuid.UUID) (*model.VoyageInventory, error)
	UpdateStatus(ctx context.Context, id int, status model.VoyageStatus) (*model.VoyageInventory, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, inventory *model.VoyageInventory) (*model.VoyageInventory, error)
	FindByVoyageIDWithLock(ctx context.Context, tx pgx.Tx, voyageID uuid.UUID) (*model.VoyageInventory, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.VoyageInventory, error)
	AdjustAvailable(ctx context.Context, tx pgx.Tx, id int, delta int) error
	SetAvailable(ctx context.Context, tx pgx.Tx, id int, available int) error
}

type VoyageInventoryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewVoyageInventoryRepository(pool *pgxpool.Pool) VoyageInventoryRepository {
	return &VoyageInventoryRepositoryImpl{
		pool: pool,
	}
}

const inventoryColumns = `id, voyage_id, route_name, bus_plate_no, driver,
		departure_time, arrival_time, status, total_seats, available_seats,
		created_at, updated_at`

func scanInventory(row pgx.Row) (*model.VoyageInventory, error) {
	var inv model.VoyageInventory
	err := row.Scan(
		&inv.ID,
		&inv.VoyageID,
		&inv.RouteName,
		&inv.BusPlateNo,
		&inv.Driver,
		&inv.DepartureTime,
		&inv.ArrivalTime,
		&inv.Status,
		&inv.TotalSeats,
		&inv.AvailableSeats,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *VoyageInventoryRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, inventory *model.VoyageInventory) (*model.VoyageInventory, error) {
	query := `
		INSERT INTO voyage_inventories (
			voyage_id, route_name, bus_plate_no, driver,
			departure_time, arrival_time, status, total_seats, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + inventoryColumns

	created, err := scanInventory(tx.QueryRow(ctx, query,
		inventory.VoyageID, inventory.RouteName, inventory.BusPlateNo, inventory.Driver,
		inventory.DepartureTime, inventory.ArrivalTime, inventory.Status,
		inventory.TotalSeats, inventory.AvailableSeats,
	))

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrInventoryExists
		}
		return nil, err
	}

	return created, nil
}

func (r *VoyageInventoryRepositoryImpl) List(ctx context.Context) ([]*model.VoyageInventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM voyage_inventories
		ORDER BY departure_time ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inventories := make([]*model.VoyageInventory, 0)

	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		inventories = append(inventories, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return inventories, nil
}

func (r *VoyageInventoryRepositoryImpl) FindByID(ctx context.Context, id int) (*model.VoyageInventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM voyage_inventories
		WHERE id = $1
	`

	inv, err := scanInventory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVoyageNotFound
		}
		return nil, err
	}

	return inv, nil
}

func (r *VoyageInventoryRepositoryImpl) FindByVoyageID(ctx context.Context, voyageID uuid.UUID) (*model.VoyageInventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM voyage_inventories
		WHERE voyage_id = $1
	`

	inv, err := scanInventory(r.pool.QueryRow(ctx, query, voyageID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVoyageNotFound
		}
		return nil, err
	}

	return inv, nil
}

func (r *VoyageInventoryRepositoryImpl) FindByVoyageIDWithLock(ctx context.Context, tx pgx.Tx, voyageID uuid.UUID) (*model.VoyageInventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM voyage_inventories
		WHERE voyage_id = $1
		FOR UPDATE
	`

	inv, err := scanInventory(tx.QueryRow(ctx, query, voyageID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVoyageNotFound
		}
		return nil, err
	}

	return inv, nil
}

func (r *VoyageInventoryRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.VoyageInventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM voyage_inventories
		WHERE id = $1
		FOR UPDATE
	`

	inv, err := scanInventory(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVoyageNotFound
		}
		return nil, err
	}

	return inv, nil
}

func (r *VoyageInventoryRepositoryImpl) UpdateStatus(ctx context.Context, id int, status model.VoyageStatus) (*model.VoyageInventory, error) {
	query := `
		UPDATE voyage_inventories
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + inventoryColumns

	inv, err := scanInventory(r.pool.QueryRow(ctx, query, status, time.Now().UTC(), id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVoyageNotFound
		}
		return nil, err
	}

	return inv, nil
}

// AdjustAvailable 以相對增量調整 available_seats，範圍守衛寫在 WHERE 裡：
// 已存在的班次更新不到任何列，代表計數會越界，屬於一致性錯誤而不是靜默夾限。
func (r *VoyageInventoryRepositoryImpl) AdjustAvailable(ctx context.Context, tx pgx.Tx, id int, delta int) error {
	query := `
		UPDATE voyage_inventories
		SET available_seats = available_seats + $1, updated_at = $2
		WHERE id = $3
		  AND available_seats + $1 >= 0
		  AND available_seats + $1 <= total_seats
	`

	result, err := tx.Exec(ctx, query, delta, time.Now().UTC(), id)
	if err != nil {
		if isCheckViolation(err) {
			return apperrors.ErrConsistencyViolation
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrConsistencyViolation
	}

	return nil
}

func (r *VoyageInventoryRepositoryImpl) SetAvailable(ctx context.Context, tx pgx.Tx, id int, available int) error {
	query := `
		UPDATE voyage_inventories
		SET available_seats = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := tx.Exec(ctx, query, available, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrVoyageNotFound
	}

	return nil
}
