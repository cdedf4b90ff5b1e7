package services

import (
	"context"

	"bus-ticketing-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PassengerServiceMock struct {
	mock.Mock
}

func NewPassengerServiceMock() *PassengerServiceMock {
	return &PassengerServiceMock{}
}

func (m *PassengerServiceMock) ListByVoyage(ctx context.Context, voyageID uuid.UUID) ([]*model.Passenger, error) {
	args := m.Called(ctx, voyageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Passenger), args.Error(1)
}

func (m *PassengerServiceMock) GetByID(ctx context.Context, id int) (*model.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Passenger), args.Error(1)
}
