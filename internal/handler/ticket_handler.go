package handler

import (
	"net/http"

	"bus-ticketing-backend/internal/model"
	"bus-ticketing-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("tickets", h.List)
		router.GET("tickets/:uuid", h.GetByTicketID)
		router.GET("inventories/:uuid/tickets", h.ListByVoyage)
		router.PUT("tickets/:uuid/payment", h.UpdatePayment)
		router.DELETE("tickets/:uuid", h.Delete)
	}
}

func (h *TicketHandler) List(c *gin.Context) {
	tickets, err := h.service.List(c)
	if err != nil {
		handleError(c, err, "ListTickets")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) ListByVoyage(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	tickets, err := h.service.ListByVoyage(c, voyageID)
	if err != nil {
		handleError(c, err, "ListTicketsByVoyage")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) GetByTicketID(c *gin.Context) {
	ticketID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	ticket, err := h.service.GetByTicketID(c, ticketID)
	if err != nil {
		handleError(c, err, "GetTicket")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) UpdatePayment(c *gin.Context) {
	ticketID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	var req model.UpdatePaymentRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.service.UpdatePayment(c, ticketID, req.PaymentStatus)
	if err != nil {
		handleError(c, err, "UpdatePayment")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Delete 刪除車票並釋放座位：回傳座位操作結果，讓呼叫端看到最新計數
func (h *TicketHandler) Delete(c *gin.Context) {
	ticketID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	result, err := h.service.Delete(c, ticketID)
	if err != nil {
		handleError(c, err, "DeleteTicket")
		return
	}
	c.JSON(http.StatusOK, result)
}
