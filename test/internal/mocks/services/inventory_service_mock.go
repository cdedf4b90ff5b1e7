package services

import (
	"context"

	"bus-ticketing-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type InventoryServiceMock struct {
	mock.Mock
}

func NewInventoryServiceMock() *InventoryServiceMock {
	return &InventoryServiceMock{}
}

func (m *InventoryServiceMock) CreateInventory(ctx context.Context, req model.CreateInventoryRequest) (*model.VoyageInventory, []*model.Seat, error) {
	args := m.Called(ctx, req)
	var inventory *model.VoyageInventory
	var seats []*model.Seat
	if args.Get(0) != nil {
		inventory = args.Get(0).(*model.VoyageInventory)
	}
	if args.Get(1) != nil {
		seats = args.Get(1).([]*model.Seat)
	}
	return inventory, seats, args.Error(2)
}

func (m *InventoryServiceMock) List(ctx context.Context) ([]*model.VoyageInventory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VoyageInventory), args.Error(1)
}

func (m *InventoryServiceMock) GetByVoyageID(ctx context.Context, voyageID uuid.UUID) (*model.VoyageInventory, error) {
	args := m.Called(ctx, voyageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoyageInventory), args.Error(1)
}

func (m *InventoryServiceMock) ListSeats(ctx context.Context, voyageID uuid.UUID) (*model.SeatMapResponse, error) {
	args := m.Called(ctx, voyageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SeatMapResponse), args.Error(1)
}

func (m *InventoryServiceMock) UpdateStatus(ctx context.Context, voyageID uuid.UUID, status model.VoyageStatus) (*model.VoyageInventory, error) {
	args := m.Called(ctx, voyageID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoyageInventory), args.Error(1)
}

func (m *InventoryServiceMock) Reconcile(ctx context.Context, id int) (*model.ReconcileResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReconcileResult), args.Error(1)
}

func (m *InventoryServiceMock) ReconcileByVoyageID(ctx context.Context, voyageID uuid.UUID) (*model.ReconcileResult, error) {
	args := m.Called(ctx, voyageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReconcileResult), args.Error(1)
}
