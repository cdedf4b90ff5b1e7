package seatmap

import (
	"fmt"

	apperrors "bus-ticketing-backend/pkg/app_errors"
)

// Layout 座位圖策略：產生一個班次的完整座位號序列。
// 必須是決定性的、無重複，且長度等於 TotalSeats()。
type Layout interface {
	Numbers() []string
	TotalSeats() int
}

// IntercityLayout 城際巴士佈局，共 41 席：
// 第 1~9 排各 4 席（A~D），第 10 排 5 席（A~E）。
type IntercityLayout struct{}

func (IntercityLayout) TotalSeats() int {
	return 41
}

func (IntercityLayout) Numbers() []string {
	numbers := make([]string, 0, 41)
	for row := 1; row <= 9; row++ {
		for _, col := range []string{"A", "B", "C", "D"} {
			numbers = append(numbers, fmt.Sprintf("%s%d", col, row))
		}
	}
	for _, col := range []string{"A", "B", "C", "D", "E"} {
		numbers = append(numbers, fmt.Sprintf("%s10", col))
	}
	return numbers
}

// GridLayout 均勻網格佈局：Columns 個字母欄 × Rows 排，例如 5×10。
type GridLayout struct {
	Rows    int
	Columns int
}

func (l GridLayout) TotalSeats() int {
	return l.Rows * l.Columns
}

func (l GridLayout) Numbers() []string {
	numbers := make([]string, 0, l.TotalSeats())
	for row := 1; row <= l.Rows; row++ {
		for col := 0; col < l.Columns; col++ {
			numbers = append(numbers, fmt.Sprintf("%c%d", 'A'+col, row))
		}
	}
	return numbers
}

// SequentialLayout 純數字編號佈局：1..Total。
type SequentialLayout struct {
	Total int
}

func (l SequentialLayout) TotalSeats() int {
	return l.Total
}

func (l SequentialLayout) Numbers() []string {
	numbers := make([]string, 0, l.Total)
	for i := 1; i <= l.Total; i++ {
		numbers = append(numbers, fmt.Sprintf("%d", i))
	}
	return numbers
}

const (
	LayoutIntercity  = "intercity"
	LayoutGrid       = "grid"
	LayoutSequential = "sequential"
)

// maxColumns 網格佈局最多 26 欄（A~Z）
const maxColumns = 26

// Resolve 依名稱與參數解析佈局。空名稱預設為城際佈局。
func Resolve(name string, rows, columns, total int) (Layout, error) {
	switch name {
	case "", LayoutIntercity:
		return IntercityLayout{}, nil
	case LayoutGrid:
		if rows <= 0 || columns <= 0 || columns > maxColumns {
			return nil, apperrors.ErrInvalidInput
		}
		return GridLayout{Rows: rows, Columns: columns}, nil
	case LayoutSequential:
		if total <= 0 {
			return nil, apperrors.ErrInvalidInput
		}
		return SequentialLayout{Total: total}, nil
	default:
		return nil, apperrors.ErrInvalidInput
	}
}
