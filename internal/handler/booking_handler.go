package handler

import (
	"net/http"

	"bus-ticketing-backend/internal/model"
	"bus-ticketing-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("inventories/:uuid/seats/select", h.SelectSeats)
		router.POST("inventories/:uuid/seats/deselect", h.DeselectSeats)
		router.POST("inventories/:uuid/seats/book", h.BookSeats)
		router.POST("inventories/:uuid/seats/cancel", h.CancelSeats)
	}
}

func (h *BookingHandler) SelectSeats(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	var req model.SeatSelectionRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.SelectSeats(c, voyageID, req.SeatNumbers)
	if err != nil {
		handleError(c, err, "SelectSeats")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) DeselectSeats(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	var req model.SeatSelectionRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.DeselectSeats(c, voyageID, req.SeatNumbers)
	if err != nil {
		handleError(c, err, "DeselectSeats")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) BookSeats(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	var req model.BookSeatsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Book(c, voyageID, req)
	if err != nil {
		handleError(c, err, "BookSeats")
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) CancelSeats(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	var req model.SeatSelectionRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Cancel(c, voyageID, req.SeatNumbers)
	if err != nil {
		handleError(c, err, "CancelSeats")
		return
	}
	c.JSON(http.StatusOK, result)
}
