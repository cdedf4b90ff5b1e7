package repository

import (
	"context"

	"bus-ticketing-backend/internal/model"
	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	ListByVoyage(ctx context.Context, voyageID int) ([]*model.Passenger, error)
	FindByID(ctx context.Context, id int) (*model.Passenger, error)
	FindByPhoneAndVoyage(ctx context.Context, phone string, voyageID int) (*model.Passenger, error)

	// Transaction methods
	FindOrCreate(ctx context.Context, tx pgx.Tx, passenger *model.Passenger) (*model.Passenger, error)
}

type PassengerRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPassengerRepository(pool *pgxpool.Pool) PassengerRepository {
	return &PassengerRepositoryImpl{
		pool: pool,
	}
}

const passengerColumns = `id, voyage_id, name, phone, email, created_at, updated_at`

func scanPassenger(row pgx.Row) (*model.Passenger, error) {
	var p model.Passenger
	err := row.Scan(
		&p.ID,
		&p.VoyageID,
		&p.Name,
		&p.Phone,
		&p.Email,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindOrCreate 以 (phone, voyage_id) 為鍵 upsert：
// 用 ON CONFLICT DO UPDATE 而不是先查再插，避免失敗的 INSERT 讓整個交易中止。
func (r *PassengerRepositoryImpl) FindOrCreate(ctx context.Context, tx pgx.Tx, passenger *model.Passenger) (*model.Passenger, error) {
	query := `
		INSERT INTO passengers (voyage_id, name, phone, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone, voyage_id)
		DO UPDATE SET updated_at = NOW()
		RETURNING ` + passengerColumns

	created, err := scanPassenger(tx.QueryRow(ctx, query,
		passenger.VoyageID, passenger.Name, passenger.Phone, passenger.Email,
	))
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *PassengerRepositoryImpl) ListByVoyage(ctx context.Context, voyageID int) ([]*model.Passenger, error) {
	query := `
		SELECT ` + passengerColumns + `
		FROM passengers
		WHERE voyage_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, voyageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]*model.Passenger, 0)

	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return passengers, nil
}

func (r *PassengerRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Passenger, error) {
	query := `
		SELECT ` + passengerColumns + `
		FROM passengers
		WHERE id = $1
	`

	p, err := scanPassenger(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPassengerNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PassengerRepositoryImpl) FindByPhoneAndVoyage(ctx context.Context, phone string, voyageID int) (*model.Passenger, error) {
	query := `
		SELECT ` + passengerColumns + `
		FROM passengers
		WHERE phone = $1 AND voyage_id = $2
	`

	p, err := scanPassenger(r.pool.QueryRow(ctx, query, phone, voyageID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPassengerNotFound
		}
		return nil, err
	}

	return p, nil
}
