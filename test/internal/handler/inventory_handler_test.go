package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bus-ticketing-backend/internal/handler"
	"bus-ticketing-backend/internal/model"
	mocks "bus-ticketing-backend/test/internal/mocks/services"

	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupInventoryTestRouter(mockService *mocks.InventoryServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	inventoryHandler := handler.NewInventoryHandler(mockService)
	inventoryHandler.RegisterRoutes(router)

	return router
}

func newCreateInventoryRequest() model.CreateInventoryRequest {
	departure := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	return model.CreateInventoryRequest{
		VoyageID:      uuid.New(),
		RouteName:     "Taipei - Kaohsiung",
		BusPlateNo:    "KAA-1234",
		Driver:        "Lin",
		DepartureTime: departure,
		ArrivalTime:   departure.Add(5 * time.Hour),
	}
}

func TestCreateInventory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewInventoryServiceMock()
		router := setupInventoryTestRouter(mockService)

		body := newCreateInventoryRequest()
		mockService.On("CreateInventory", mock.Anything, mock.Anything).Return(&model.VoyageInventory{
			ID:             1,
			VoyageID:       body.VoyageID,
			RouteName:      body.RouteName,
			Status:         model.VoyageStatusActive,
			TotalSeats:     41,
			AvailableSeats: 41,
		}, []*model.Seat{
			{ID: 1, VoyageID: 1, Number: "A1", State: model.SeatStateAvailable},
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/inventories", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrInventoryExists", func(t *testing.T) {
		mockService := mocks.NewInventoryServiceMock()
		router := setupInventoryTestRouter(mockService)

		mockService.On("CreateInventory", mock.Anything, mock.Anything).
			Return(nil, nil, apperrors.ErrInventoryExists).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/inventories", newCreateInventoryRequest())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - InvalidJSON", func(t *testing.T) {
		mockService := mocks.NewInventoryServiceMock()
		router := setupInventoryTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/inventories", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateInventory")
	})
}

func TestGetSeatMap(t *testing.T) {
	voyageID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewInventoryServiceMock()
		router := setupInventoryTestRouter(mockService)

		mockService.On("ListSeats", mock.Anything, voyageID).Return(&model.SeatMapResponse{
			VoyageID:       voyageID.String(),
			Status:         string(model.VoyageStatusActive),
			TotalSeats:     41,
			AvailableSeats: 39,
			BookedSeats:    2,
			Seats: []model.SeatInfo{
				{Number: "A1", State: model.SeatStateBooked},
				{Number: "B1", State: model.SeatStateBooked},
			},
		}, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/inventories/"+voyageID.String()+"/seats", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.SeatMapResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 39, resp.AvailableSeats)
		assert.Len(t, resp.Seats, 2)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrVoyageNotFound", func(t *testing.T) {
		mockService := mocks.NewInventoryServiceMock()
		router := setupInventoryTestRouter(mockService)

		mockService.On("ListSeats", mock.Anything, voyageID).
			Return(nil, apperrors.ErrVoyageNotFound).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/inventories/"+voyageID.String()+"/seats", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestUpdateInventoryStatus(t *testing.T) {
	voyageID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewInventoryServiceMock()
		router := setupInventoryTestRouter(mockService)

		mockService.On("UpdateStatus", mock.Anything, voyageID, model.VoyageStatusBoarding).
			Return(&model.VoyageInventory{
				VoyageID: voyageID,
				Status:   model.VoyageStatusBoarding,
			}, nil).Once()

		req := createJSONHTTPRequest("PUT", "/api/v1/inventories/"+voyageID.String()+"/status",
			handler.UpdateStatusRequest{Status: model.VoyageStatusBoarding})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrInvalidTransition", func(t *testing.T) {
		mockService := mocks.NewInventoryServiceMock()
		router := setupInventoryTestRouter(mockService)

		mockService.On("UpdateStatus", mock.Anything, voyageID, model.VoyageStatusCompleted).
			Return(nil, apperrors.ErrInvalidTransition).Once()

		req := createJSONHTTPRequest("PUT", "/api/v1/inventories/"+voyageID.String()+"/status",
			handler.UpdateStatusRequest{Status: model.VoyageStatusCompleted})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestReconcileInventory(t *testing.T) {
	voyageID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewInventoryServiceMock()
		router := setupInventoryTestRouter(mockService)

		mockService.On("ReconcileByVoyageID", mock.Anything, voyageID).Return(&model.ReconcileResult{
			VoyageID:            voyageID.String(),
			PreviousAvailable:   1,
			RecomputedAvailable: 3,
			Drift:               2,
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/inventories/"+voyageID.String()+"/reconcile", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.ReconcileResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Drift)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrVoyageNotFound", func(t *testing.T) {
		mockService := mocks.NewInventoryServiceMock()
		router := setupInventoryTestRouter(mockService)

		mockService.On("ReconcileByVoyageID", mock.Anything, voyageID).
			Return(nil, apperrors.ErrVoyageNotFound).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/inventories/"+voyageID.String()+"/reconcile", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}
