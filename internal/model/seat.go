package model

import "time"

// SeatState 座位狀態類型
type SeatState string

const (
	SeatStateAvailable SeatState = "available"
	SeatStateSelected  SeatState = "selected"
	SeatStateBooked    SeatState = "booked"
)

// IsValid 驗證狀態是否有效
func (s SeatState) IsValid() bool {
	switch s {
	case SeatStateAvailable, SeatStateSelected, SeatStateBooked:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
// available → selected → booked → available；也允許 available 直接 → booked
func (s SeatState) CanTransitionTo(target SeatState) bool {
	transitions := map[SeatState][]SeatState{
		SeatStateAvailable: {SeatStateSelected, SeatStateBooked},
		SeatStateSelected:  {SeatStateAvailable, SeatStateBooked},
		SeatStateBooked:    {SeatStateAvailable},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == target {
			return true
		}
	}
	return false
}

// Seat 座位模型：每個班次每個座位號恰好一筆，建立後不刪除，只變更 state。
type Seat struct {
	ID        int       `json:"id" db:"id"`
	VoyageID  int       `json:"voyage_id" db:"voyage_id"`
	Number    string    `json:"number" db:"number"`
	State     SeatState `json:"state" db:"state"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsAvailable 檢查座位是否可選
func (s *Seat) IsAvailable() bool {
	return s.State == SeatStateAvailable
}

// SeatSelectionRequest 選位/退選/取消請求
type SeatSelectionRequest struct {
	SeatNumbers []string `json:"seat_numbers" binding:"required,min=1"`
}

// BookSeatsRequest 訂位請求
type BookSeatsRequest struct {
	SeatNumbers   []string `json:"seat_numbers" binding:"required,min=1"`
	PassengerName string   `json:"passenger_name" binding:"required"`
	Phone         string   `json:"phone" binding:"required"`
	Email         *string  `json:"email"`
	Fare          float64  `json:"fare" binding:"required,min=0"`
	IssuedBy      string   `json:"issued_by" binding:"required"`
	PaymentStatus string   `json:"payment_status"`
	FromSelection bool     `json:"from_selection"`
}

// SeatInfo 座位圖回應中的單一座位
type SeatInfo struct {
	Number string    `json:"number"`
	State  SeatState `json:"state"`
}

// SeatMapResponse 班次座位圖回應
type SeatMapResponse struct {
	VoyageID       string     `json:"voyage_id"`
	Status         string     `json:"status"`
	TotalSeats     int        `json:"total_seats"`
	AvailableSeats int        `json:"available_seats"`
	SelectedSeats  int        `json:"selected_seats"`
	BookedSeats    int        `json:"booked_seats"`
	Seats          []SeatInfo `json:"seats"`
}

// ReconcileResult 重算結果：回報修正前後的 available_seats 與漂移量
type ReconcileResult struct {
	VoyageID            string `json:"voyage_id"`
	PreviousAvailable   int    `json:"previous_available"`
	RecomputedAvailable int    `json:"recomputed_available"`
	Drift               int    `json:"drift"`
}

// SeatOperationResult 選位/訂位/取消的統一結果：回傳受影響的座位與最新的計數。
// 衝突座位不走這裡，由 SeatConflictError 帶出。
type SeatOperationResult struct {
	VoyageID       string   `json:"voyage_id"`
	AffectedSeats  []string `json:"affected_seats"`
	TotalSeats     int      `json:"total_seats"`
	AvailableSeats int      `json:"available_seats"`
	BookedSeats    int      `json:"booked_seats"`
	TicketIDs      []string `json:"ticket_ids,omitempty"`
}
