package services

import (
	"context"

	"bus-ticketing-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type BookingServiceMock struct {
	mock.Mock
}

func NewBookingServiceMock() *BookingServiceMock {
	return &BookingServiceMock{}
}

func (m *BookingServiceMock) SelectSeats(ctx context.Context, voyageID uuid.UUID, numbers []string) (*model.SeatOperationResult, error) {
	args := m.Called(ctx, voyageID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SeatOperationResult), args.Error(1)
}

func (m *BookingServiceMock) DeselectSeats(ctx context.Context, voyageID uuid.UUID, numbers []string) (*model.SeatOperationResult, error) {
	args := m.Called(ctx, voyageID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SeatOperationResult), args.Error(1)
}

func (m *BookingServiceMock) Book(ctx context.Context, voyageID uuid.UUID, req model.BookSeatsRequest) (*model.SeatOperationResult, error) {
	args := m.Called(ctx, voyageID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SeatOperationResult), args.Error(1)
}

func (m *BookingServiceMock) Cancel(ctx context.Context, voyageID uuid.UUID, numbers []string) (*model.SeatOperationResult, error) {
	args := m.Called(ctx, voyageID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SeatOperationResult), args.Error(1)
}
