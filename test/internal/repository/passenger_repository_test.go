package repository

import (
	"context"
	"testing"

	"bus-ticketing-backend/internal/model"
	"bus-ticketing-backend/internal/repository"
	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassengerRepository_FindOrCreate(t *testing.T) {
	repo := repository.NewPassengerRepository(getTestDB())
	ctx := context.Background()

	t.Run("Creates new passenger", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		voyageID, _ := createTestInventory(t, "Route A", 41)

		tx, err := getTestDB().Begin(ctx)
		require.NoError(t, err)

		created, err := repo.FindOrCreate(ctx, tx, &model.Passenger{
			VoyageID: voyageID,
			Name:     "Wang",
			Phone:    "0912345678",
		})
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		assert.NotZero(t, created.ID)
		assert.Equal(t, "Wang", created.Name)
		assertRowCount(t, "passengers", 1)
	})

	// 同電話同班次回傳既有乘客，不新增
	t.Run("Returns existing passenger for same phone and voyage", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		voyageID, _ := createTestInventory(t, "Route A", 41)
		existingID := createTestPassenger(t, voyageID, "Wang", "0912345678")

		tx, err := getTestDB().Begin(ctx)
		require.NoError(t, err)

		found, err := repo.FindOrCreate(ctx, tx, &model.Passenger{
			VoyageID: voyageID,
			Name:     "Wang",
			Phone:    "0912345678",
		})
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		assert.Equal(t, existingID, found.ID)
		assertRowCount(t, "passengers", 1)
	})

	// 同電話不同班次是不同乘客記錄
	t.Run("Same phone on another voyage creates a new record", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		voyageA, _ := createTestInventory(t, "Route A", 41)
		voyageB, _ := createTestInventory(t, "Route B", 41)
		createTestPassenger(t, voyageA, "Wang", "0912345678")

		tx, err := getTestDB().Begin(ctx)
		require.NoError(t, err)

		created, err := repo.FindOrCreate(ctx, tx, &model.Passenger{
			VoyageID: voyageB,
			Name:     "Wang",
			Phone:    "0912345678",
		})
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		assert.Equal(t, voyageB, created.VoyageID)
		assertRowCount(t, "passengers", 2)
	})
}

func TestPassengerRepository_ListByVoyage(t *testing.T) {
	repo := repository.NewPassengerRepository(getTestDB())
	ctx := context.Background()

	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	voyageA, _ := createTestInventory(t, "Route A", 41)
	voyageB, _ := createTestInventory(t, "Route B", 41)
	createTestPassenger(t, voyageA, "Wang", "0912345678")
	createTestPassenger(t, voyageA, "Chen", "0922334455")
	createTestPassenger(t, voyageB, "Lin", "0933556677")

	passengers, err := repo.ListByVoyage(ctx, voyageA)

	require.NoError(t, err)
	assert.Len(t, passengers, 2)
}

func TestPassengerRepository_FindByID(t *testing.T) {
	repo := repository.NewPassengerRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		voyageID, _ := createTestInventory(t, "Route A", 41)
		id := createTestPassenger(t, voyageID, "Wang", "0912345678")

		found, err := repo.FindByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "Wang", found.Name)
		assert.Equal(t, "0912345678", found.Phone)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, apperrors.ErrPassengerNotFound)
	})
}

func TestPassengerRepository_FindByPhoneAndVoyage(t *testing.T) {
	repo := repository.NewPassengerRepository(getTestDB())
	ctx := context.Background()

	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	voyageID, _ := createTestInventory(t, "Route A", 41)
	createTestPassenger(t, voyageID, "Wang", "0912345678")

	found, err := repo.FindByPhoneAndVoyage(ctx, "0912345678", voyageID)
	require.NoError(t, err)
	assert.Equal(t, "Wang", found.Name)

	_, err = repo.FindByPhoneAndVoyage(ctx, "0900000000", voyageID)
	assert.ErrorIs(t, err, apperrors.ErrPassengerNotFound)
}
