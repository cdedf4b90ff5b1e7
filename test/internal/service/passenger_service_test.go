package service

import (
	"context"
	"testing"

	"bus-ticketing-backend/internal/repository"
	"bus-ticketing-backend/internal/service"
	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPassengerService() service.PassengerService {
	passengerRepo := repository.NewPassengerRepository(getTestDB())
	inventoryRepo := repository.NewVoyageInventoryRepository(getTestDB())
	return service.NewPassengerService(passengerRepo, inventoryRepo)
}

func TestPassengerService_ListByVoyage(t *testing.T) {
	ctx := context.Background()
	inventorySvc := newInventoryService()
	bookingSvc := newBookingService()
	passengerSvc := newPassengerService()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		inventory := createGridInventory(t, inventorySvc, 4)

		// 同一個乘客訂兩席只會有一筆乘客記錄
		_, err := bookingSvc.Book(ctx, inventory.VoyageID, newBookRequest([]string{"A1", "A2"}))
		require.NoError(t, err)

		otherReq := newBookRequest([]string{"A3"})
		otherReq.PassengerName = "Chen"
		otherReq.Phone = "0922334455"
		_, err = bookingSvc.Book(ctx, inventory.VoyageID, otherReq)
		require.NoError(t, err)

		passengers, err := passengerSvc.ListByVoyage(ctx, inventory.VoyageID)

		require.NoError(t, err)
		assert.Len(t, passengers, 2)
	})

	t.Run("Failed - VoyageNotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		_, err := passengerSvc.ListByVoyage(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrVoyageNotFound)
	})
}

func TestPassengerService_GetByID(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	passengerSvc := newPassengerService()

	_, err := passengerSvc.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrPassengerNotFound)
}
