package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVoyageNotFound    = errors.New("voyage not found")
	ErrSeatNotFound      = errors.New("seat not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrVoyageNotBookable = errors.New("voyage is not bookable")
	ErrInsufficientSeats = errors.New("insufficient available seats")
	ErrInventoryExists   = errors.New("inventory already exists for voyage")
	ErrPassengerExists   = errors.New("passenger already exists for voyage")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternalServer    = errors.New("internal server error")

	// ErrConsistencyViolation 代表座位狀態與彙總計數不一致，屬於致命錯誤。
	// 正常併發下不應出現，出現時必須記錄並觸發 reconcile。
	ErrConsistencyViolation = errors.New("inventory consistency violation")
)

// SeatConflictError 座位狀態衝突：列出不在要求狀態的座位，
// 讓呼叫端可以縮小範圍後重試。
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats not in required state: %s", strings.Join(e.Seats, ", "))
}

// NewSeatConflict 以「請求的座位 - 實際轉換成功的座位」建立衝突錯誤。
func NewSeatConflict(requested, matched []string) *SeatConflictError {
	matchedSet := make(map[string]struct{}, len(matched))
	for _, n := range matched {
		matchedSet[n] = struct{}{}
	}
	conflict := make([]string, 0, len(requested))
	for _, n := range requested {
		if _, ok := matchedSet[n]; !ok {
			conflict = append(conflict, n)
		}
	}
	return &SeatConflictError{Seats: conflict}
}
