package handler

import (
	"errors"
	"net/http"

	apperrors "bus-ticketing-backend/pkg/app_errors"
	"bus-ticketing-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// ParseUUIDParam 解析路徑中的 uuid 參數，失敗時直接回 400
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// handleError 集中處理業務錯誤到 HTTP 狀態碼的對應。
// 座位衝突回 409 並附上衝突的座位清單，讓呼叫端可以縮小範圍重試。
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var conflict *apperrors.SeatConflictError
	if errors.As(err, &conflict) {
		log.Warn("Seat conflict")
		c.JSON(http.StatusConflict, gin.H{
			"error":          "Some seats are not in the required state",
			"conflict_seats": conflict.Seats,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrVoyageNotFound):
		log.Warn("Voyage not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Voyage not found"})
	case errors.Is(err, apperrors.ErrSeatNotFound):
		log.Warn("Seat not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Seat not found"})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
	case errors.Is(err, apperrors.ErrPassengerNotFound):
		log.Warn("Passenger not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Passenger not found"})
	case errors.Is(err, apperrors.ErrInsufficientSeats):
		log.Warn("Insufficient seats")
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient available seats"})
	case errors.Is(err, apperrors.ErrVoyageNotBookable):
		log.Warn("Voyage not bookable")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Voyage is not bookable"})
	case errors.Is(err, apperrors.ErrInventoryExists):
		log.Warn("Inventory already exists")
		c.JSON(http.StatusConflict, gin.H{"error": "Inventory already exists for this voyage"})
	case errors.Is(err, apperrors.ErrPassengerExists):
		log.Warn("Passenger already exists")
		c.JSON(http.StatusConflict, gin.H{"error": "Passenger already exists for this voyage"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		log.Warn("Invalid status transition")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid status transition"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, apperrors.ErrConsistencyViolation):
		// 不變量被打破：這是程式或交易邊界的 bug，必須大聲記錄
		log.Error("Consistency violation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
