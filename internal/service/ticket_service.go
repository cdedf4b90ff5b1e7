package service

import (
	"context"

	"bus-ticketing-backend/internal/model"
	"bus-ticketing-backend/internal/repository"
	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/google/uuid"
)

type TicketService interface {
	List(ctx context.Context) ([]*model.Ticket, error)
	ListByVoyage(ctx context.Context, voyageID uuid.UUID) ([]*model.Ticket, error)
	GetByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error)
	UpdatePayment(ctx context.Context, ticketID uuid.UUID, status model.PaymentStatus) (*model.Ticket, error)
	// Delete 刪除車票等同取消該座位的訂位：座位釋回、計數加回，整件事委派給訂位引擎。
	Delete(ctx context.Context, ticketID uuid.UUID) (*model.SeatOperationResult, error)
}

type TicketServiceImpl struct {
	repo          repository.TicketRepository
	inventoryRepo repository.VoyageInventoryRepository
	booking       BookingService
}

func NewTicketService(
	repo repository.TicketRepository,
	inventoryRepo repository.VoyageInventoryRepository,
	booking BookingService,
) TicketService {
	return &TicketServiceImpl{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		booking:       booking,
	}
}

func (s *TicketServiceImpl) List(ctx context.Context) ([]*model.Ticket, error) {
	return s.repo.List(ctx)
}

func (s *TicketServiceImpl) ListByVoyage(ctx context.Context, voyageID uuid.UUID) ([]*model.Ticket, error) {
	inventory, err := s.inventoryRepo.FindByVoyageID(ctx, voyageID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByVoyage(ctx, inventory.ID)
}

func (s *TicketServiceImpl) GetByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	return s.repo.FindByTicketID(ctx, ticketID)
}

func (s *TicketServiceImpl) UpdatePayment(ctx context.Context, ticketID uuid.UUID, status model.PaymentStatus) (*model.Ticket, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}
	return s.repo.UpdatePaymentStatus(ctx, ticketID, status)
}

func (s *TicketServiceImpl) Delete(ctx context.Context, ticketID uuid.UUID) (*model.SeatOperationResult, error) {
	ticket, err := s.repo.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	inventory, err := s.inventoryRepo.FindByID(ctx, ticket.VoyageID)
	if err != nil {
		return nil, err
	}

	return s.booking.Cancel(ctx, inventory.VoyageID, []string{ticket.SeatNumber})
}
