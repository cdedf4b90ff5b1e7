package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus 付款狀態類型
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusUnpaid   PaymentStatus = "Unpaid"
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// IsValid 驗證狀態是否有效
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusUnpaid, PaymentStatusPending, PaymentStatusRefunded:
		return true
	}
	return false
}

// Ticket 車票模型：只會在訂位交易中建立、在取消交易中軟刪除。
// 同一班次同一座位號最多存在一張未刪除的車票，且該座位必須是 booked。
type Ticket struct {
	ID            int           `json:"id" db:"id"`
	TicketID      uuid.UUID     `json:"ticket_id" db:"ticket_id"`
	VoyageID      int           `json:"voyage_id" db:"voyage_id"`
	PassengerID   int           `json:"passenger_id" db:"passenger_id"`
	PassengerName string        `json:"passenger_name" db:"passenger_name"`
	SeatNumber    string        `json:"seat_number" db:"seat_number"`
	Fare          float64       `json:"fare" db:"fare"`
	IssuedBy      string        `json:"issued_by" db:"issued_by"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time    `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted 檢查車票是否已刪除
func (t *Ticket) IsDeleted() bool {
	return t.DeletedAt != nil
}

// UpdatePaymentRequest 更新付款狀態請求
type UpdatePaymentRequest struct {
	PaymentStatus PaymentStatus `json:"payment_status" binding:"required"`
}
