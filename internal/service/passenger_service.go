package service

import (
	"context"

	"bus-ticketing-backend/internal/model"
	"bus-ticketing-backend/internal/repository"

	"github.com/google/uuid"
)

type PassengerService interface {
	ListByVoyage(ctx context.Context, voyageID uuid.UUID) ([]*model.Passenger, error)
	GetByID(ctx context.Context, id int) (*model.Passenger, error)
}

type PassengerServiceImpl struct {
	repo          repository.PassengerRepository
	inventoryRepo repository.VoyageInventoryRepository
}

func NewPassengerService(repo repository.PassengerRepository, inventoryRepo repository.VoyageInventoryRepository) PassengerService {
	return &PassengerServiceImpl{repo: repo, inventoryRepo: inventoryRepo}
}

func (s *PassengerServiceImpl) ListByVoyage(ctx context.Context, voyageID uuid.UUID) ([]*model.Passenger, error) {
	inventory, err := s.inventoryRepo.FindByVoyageID(ctx, voyageID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByVoyage(ctx, inventory.ID)
}

func (s *PassengerServiceImpl) GetByID(ctx context.Context, id int) (*model.Passenger, error) {
	return s.repo.FindByID(ctx, id)
}
