package handler

import (
	"net/http"

	"bus-ticketing-backend/internal/model"
	"bus-ticketing-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(service service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("inventories", h.List)
		router.GET("inventories/:uuid", h.GetByVoyageID)
		router.POST("inventories", h.Create)
		router.GET("inventories/:uuid/seats", h.ListSeats)
		router.PUT("inventories/:uuid/status", h.UpdateStatus)
		router.POST("inventories/:uuid/reconcile", h.Reconcile)
	}
}

// UpdateStatusRequest 更新班次狀態請求
type UpdateStatusRequest struct {
	Status model.VoyageStatus `json:"status" binding:"required"`
}

func (h *InventoryHandler) List(c *gin.Context) {
	inventories, err := h.service.List(c)
	if err != nil {
		handleError(c, err, "ListInventories")
		return
	}
	c.JSON(http.StatusOK, inventories)
}

func (h *InventoryHandler) GetByVoyageID(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	inventory, err := h.service.GetByVoyageID(c, voyageID)
	if err != nil {
		handleError(c, err, "GetInventory")
		return
	}
	c.JSON(http.StatusOK, inventory)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req model.CreateInventoryRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	inventory, seats, err := h.service.CreateInventory(c, req)
	if err != nil {
		handleError(c, err, "CreateInventory")
		return
	}

	seatInfos := make([]model.SeatInfo, 0, len(seats))
	for _, seat := range seats {
		seatInfos = append(seatInfos, model.SeatInfo{Number: seat.Number, State: seat.State})
	}

	c.JSON(http.StatusCreated, gin.H{
		"inventory":     inventory,
		"seats_created": len(seats),
		"seats":         seatInfos,
	})
}

func (h *InventoryHandler) ListSeats(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	seatMap, err := h.service.ListSeats(c, voyageID)
	if err != nil {
		handleError(c, err, "ListSeats")
		return
	}
	c.JSON(http.StatusOK, seatMap)
}

func (h *InventoryHandler) UpdateStatus(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	inventory, err := h.service.UpdateStatus(c, voyageID, req.Status)
	if err != nil {
		handleError(c, err, "UpdateStatus")
		return
	}
	c.JSON(http.StatusOK, inventory)
}

func (h *InventoryHandler) Reconcile(c *gin.Context) {
	voyageID, ok := ParseUUIDParam(c, "uuid")
	if !ok {
		return
	}
	result, err := h.service.ReconcileByVoyageID(c, voyageID)
	if err != nil {
		handleError(c, err, "Reconcile")
		return
	}
	c.JSON(http.StatusOK, result)
}
