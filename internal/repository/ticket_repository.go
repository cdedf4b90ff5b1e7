package repository

import (
	"context"
	"fmt"
	"time"

	"bus-ticketing-backend/internal/model"
	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	List(ctx context.Context) ([]*model.Ticket, error)
	ListByVoyage(ctx context.Context, voyageID int) ([]*model.Ticket, error)
	FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error)
	UpdatePaymentStatus(ctx context.Context, ticketID uuid.UUID, status model.PaymentStatus) (*model.Ticket, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error)
	DeleteBySeatNumbers(ctx context.Context, tx pgx.Tx, voyageID int, numbers []string) (int, error)
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `id, ticket_id, voyage_id, passenger_id, passenger_name,
		seat_number, fare, issued_by, payment_status, created_at, updated_at, deleted_at`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.TicketID,
		&ticket.VoyageID,
		&ticket.PassengerID,
		&ticket.PassengerName,
		&ticket.SeatNumber,
		&ticket.Fare,
		&ticket.IssuedBy,
		&ticket.PaymentStatus,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Create 只允許在訂位交易內呼叫：同班次同座位的未刪除車票
// 由部分唯一索引擋下，違反時視為座位衝突。
func (r *TicketRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (
			ticket_id, voyage_id, passenger_id, passenger_name,
			seat_number, fare, issued_by, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + ticketColumns

	created, err := scanTicket(tx.QueryRow(ctx, query,
		ticket.TicketID, ticket.VoyageID, ticket.PassengerID, ticket.PassengerName,
		ticket.SeatNumber, ticket.Fare, ticket.IssuedBy, ticket.PaymentStatus,
	))

	if err != nil {
		if isUniqueViolation(err) {
			return nil, &apperrors.SeatConflictError{Seats: []string{ticket.SeatNumber}}
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return created, nil
}

func (r *TicketRepositoryImpl) List(ctx context.Context) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	return r.queryTickets(ctx, query)
}

func (r *TicketRepositoryImpl) ListByVoyage(ctx context.Context, voyageID int) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE voyage_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	return r.queryTickets(ctx, query, voyageID)
}

func (r *TicketRepositoryImpl) queryTickets(ctx context.Context, query string, args ...interface{}) ([]*model.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)

	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepositoryImpl) FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ticket_id = $1 AND deleted_at IS NULL
	`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, ticketID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) UpdatePaymentStatus(ctx context.Context, ticketID uuid.UUID, status model.PaymentStatus) (*model.Ticket, error) {
	query := `
		UPDATE tickets
		SET payment_status = $1, updated_at = $2
		WHERE ticket_id = $3 AND deleted_at IS NULL
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, status, time.Now().UTC(), ticketID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

// DeleteBySeatNumbers 軟刪除座位對應的車票，只允許在取消交易內呼叫。
func (r *TicketRepositoryImpl) DeleteBySeatNumbers(ctx context.Context, tx pgx.Tx, voyageID int, numbers []string) (int, error) {
	query := `
		UPDATE tickets
		SET deleted_at = $1, updated_at = $1
		WHERE voyage_id = $2 AND seat_number = ANY($3) AND deleted_at IS NULL
	`

	result, err := tx.Exec(ctx, query, time.Now().UTC(), voyageID, numbers)
	if err != nil {
		return 0, err
	}

	return int(result.RowsAffected()), nil
}
