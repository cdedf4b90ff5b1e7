package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bus-ticketing-backend/internal/handler"
	"bus-ticketing-backend/internal/model"
	mocks "bus-ticketing-backend/test/internal/mocks/services"

	apperrors "bus-ticketing-backend/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTicketTestRouter(mockService *mocks.TicketServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	ticketHandler := handler.NewTicketHandler(mockService)
	ticketHandler.RegisterRoutes(router)

	return router
}

func TestGetTicket(t *testing.T) {
	ticketID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupTicketTestRouter(mockService)

		mockService.On("GetByTicketID", mock.Anything, ticketID).Return(&model.Ticket{
			ID:            1,
			TicketID:      ticketID,
			SeatNumber:    "A1",
			PassengerName: "Wang",
			PaymentStatus: model.PaymentStatusPaid,
		}, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/tickets/"+ticketID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrTicketNotFound", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupTicketTestRouter(mockService)

		mockService.On("GetByTicketID", mock.Anything, ticketID).
			Return(nil, apperrors.ErrTicketNotFound).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/tickets/"+ticketID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - InvalidUUID", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupTicketTestRouter(mockService)

		req := createJSONHTTPRequest("GET", "/api/v1/tickets/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetByTicketID")
	})
}

func TestUpdateTicketPayment(t *testing.T) {
	ticketID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupTicketTestRouter(mockService)

		mockService.On("UpdatePayment", mock.Anything, ticketID, model.PaymentStatusPaid).
			Return(&model.Ticket{
				TicketID:      ticketID,
				PaymentStatus: model.PaymentStatusPaid,
			}, nil).Once()

		req := createJSONHTTPRequest("PUT", "/api/v1/tickets/"+ticketID.String()+"/payment",
			model.UpdatePaymentRequest{PaymentStatus: model.PaymentStatusPaid})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrInvalidInput", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupTicketTestRouter(mockService)

		mockService.On("UpdatePayment", mock.Anything, ticketID, model.PaymentStatus("Gifted")).
			Return(nil, apperrors.ErrInvalidInput).Once()

		req := createJSONHTTPRequest("PUT", "/api/v1/tickets/"+ticketID.String()+"/payment",
			model.UpdatePaymentRequest{PaymentStatus: model.PaymentStatus("Gifted")})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestDeleteTicket(t *testing.T) {
	ticketID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupTicketTestRouter(mockService)

		mockService.On("Delete", mock.Anything, ticketID).Return(&model.SeatOperationResult{
			AffectedSeats:  []string{"A1"},
			AvailableSeats: 41,
		}, nil).Once()

		req := createJSONHTTPRequest("DELETE", "/api/v1/tickets/"+ticketID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrTicketNotFound", func(t *testing.T) {
		mockService := mocks.NewTicketServiceMock()
		router := setupTicketTestRouter(mockService)

		mockService.On("Delete", mock.Anything, ticketID).
			Return(nil, apperrors.ErrTicketNotFound).Once()

		req := createJSONHTTPRequest("DELETE", "/api/v1/tickets/"+ticketID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}
