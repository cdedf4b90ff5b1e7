package model

import (
	"time"

	"github.com/google/uuid"
)

// VoyageStatus 班次狀態類型
type VoyageStatus string

const (
	VoyageStatusActive    VoyageStatus = "Active"
	VoyageStatusBoarding  VoyageStatus = "Boarding"
	VoyageStatusCompleted VoyageStatus = "Completed"
	VoyageStatusCancelled VoyageStatus = "Cancelled"
	VoyageStatusInactive  VoyageStatus = "Inactive"
)

// IsValid 驗證狀態是否有效
func (s VoyageStatus) IsValid() bool {
	switch s {
	case VoyageStatusActive, VoyageStatusBoarding, VoyageStatusCompleted,
		VoyageStatusCancelled, VoyageStatusInactive:
		return true
	}
	return false
}

// IsBookable 只有 Active 的班次可以訂位
func (s VoyageStatus) IsBookable() bool {
	return s == VoyageStatusActive
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s VoyageStatus) CanTransitionTo(target VoyageStatus) bool {
	transitions := map[VoyageStatus][]VoyageStatus{
		VoyageStatusInactive:  {VoyageStatusActive, VoyageStatusCancelled},
		VoyageStatusActive:    {VoyageStatusBoarding, VoyageStatusCancelled, VoyageStatusInactive},
		VoyageStatusBoarding:  {VoyageStatusCompleted, VoyageStatusCancelled},
		VoyageStatusCompleted: {},
		VoyageStatusCancelled: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// VoyageInventory 班次座位庫存彙總：每個班次一筆，
// available_seats 是冗餘的衍生計數，必須與 seats 表的 available 數量一致。
type VoyageInventory struct {
	ID             int          `json:"id" db:"id"`
	VoyageID       uuid.UUID    `json:"voyage_id" db:"voyage_id"`
	RouteName      string       `json:"route_name" db:"route_name"`
	BusPlateNo     string       `json:"bus_plate_no" db:"bus_plate_no"`
	Driver         string       `json:"driver" db:"driver"`
	DepartureTime  time.Time    `json:"departure_time" db:"departure_time"`
	ArrivalTime    time.Time    `json:"arrival_time" db:"arrival_time"`
	Status         VoyageStatus `json:"status" db:"status"`
	TotalSeats     int          `json:"total_seats" db:"total_seats"`
	AvailableSeats int          `json:"available_seats" db:"available_seats"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// BookedSeats 已售座位數（衍生值，方便回應使用）
func (v *VoyageInventory) BookedSeats() int {
	return v.TotalSeats - v.AvailableSeats
}

// CreateInventoryRequest 建立班次庫存請求
type CreateInventoryRequest struct {
	VoyageID      uuid.UUID `json:"voyage_id" binding:"required"`
	RouteName     string    `json:"route_name" binding:"required"`
	BusPlateNo    string    `json:"bus_plate_no" binding:"required"`
	Driver        string    `json:"driver" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	Layout        string    `json:"layout"`
	Rows          int       `json:"rows"`
	Columns       int       `json:"columns"`
	TotalSeats    int       `json:"total_seats"`
}
