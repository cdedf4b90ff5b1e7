package model

import "time"

// Passenger 乘客模型：同一班次同一電話號碼最多一筆。
type Passenger struct {
	ID        int       `json:"id" db:"id"`
	VoyageID  int       `json:"voyage_id" db:"voyage_id"`
	Name      string    `json:"name" db:"name"`
	Phone     string    `json:"phone" db:"phone"`
	Email     *string   `json:"email,omitempty" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
