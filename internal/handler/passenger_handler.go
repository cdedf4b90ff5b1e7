package handler

import (
	"net/http"
	"strconv"

	"bus-ticketing-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type PassengerHandler struct {
	service service.PassengerService
}

func NewPassengerHandler(service service.PassengerService) *PassengerHandler {
	return &PassengerHandler{service: service}
}

func (h *PassengerHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("inventories/:uuid/passengers", h.ListByVoyage)
		router.GET("passengers/:id", h.GetByID)
	}
}

func (h *PassengerHandler) ListByVoyage(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	passengers, err := h.service.ListByVoyage(c, voyageID)
	if err != nil {
		handleError(c, err, "ListPassengers")
		return
	}
	c.JSON(http.StatusOK, passengers)
}

func (h *PassengerHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid passenger id"})
		return
	}
	passenger, err := h.service.GetByID(c, id)
	if err != nil {
		handleError(c, err, "GetPassenger")
		return
	}
	c.JSON(http.StatusOK, passenger)
}
