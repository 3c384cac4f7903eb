package domain

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// SeatCategory is the category assigned to one coordinate of a hall's grid.
type SeatCategory string

const (
	SeatDisabled SeatCategory = "disabled"
	SeatStandard SeatCategory = "standard"
	SeatVIP      SeatCategory = "vip"
)

// SeatMap is a hall's seat grid: ordered rows of seat categories. Rows and
// columns are zero-based grid indexes. An empty map is valid, new halls
// start without a configuration.
type SeatMap [][]SeatCategory

// Validate reports ErrInvalidSeatMap when rows have inconsistent lengths or
// contain an unknown category.
func (m SeatMap) Validate() error {
	if len(m) == 0 {
		return nil
	}

	width := len(m[0])

	for i, row := range m {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d seats, want %d", ErrInvalidSeatMap, i, len(row), width)
		}

		for j, category := range row {
			switch category {
			case SeatDisabled, SeatStandard, SeatVIP:
			default:
				return fmt.Errorf("%w: unknown category %q at row %d, column %d", ErrInvalidSeatMap, category, i, j)
			}
		}
	}

	return nil
}

// CategoryAt returns the category at the given coordinate, or false when the
// coordinate falls outside the grid.
func (m SeatMap) CategoryAt(row, col int) (SeatCategory, bool) {
	if row < 0 || row >= len(m) || col < 0 || col >= len(m[row]) {
		return "", false
	}

	return m[row][col], true
}

type Hall struct {
	ID           int
	Name         string
	Seats        SeatMap
	RegularPrice decimal.Decimal
	VipPrice     decimal.Decimal
}

// PriceFor resolves the ticket price of a seat category. Disabled seats are
// not sellable and have no price.
func (h Hall) PriceFor(category SeatCategory) (decimal.Decimal, error) {
	switch category {
	case SeatStandard:
		return h.RegularPrice, nil
	case SeatVIP:
		return h.VipPrice, nil
	case SeatDisabled:
		return decimal.Decimal{}, ErrSeatNotSellable
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: unknown category %q", ErrInvalidSeatMap, category)
	}
}

type HallRepository interface {
	GetAll(ctx context.Context) ([]Hall, error)
	GetById(ctx context.Context, id int) (*Hall, error)
	Create(ctx context.Context, hall *Hall) error
	Delete(ctx context.Context, id int) error
	UpdateSeatMap(ctx context.Context, id int, seats SeatMap) error
	UpdatePrices(ctx context.Context, id int, regular, vip decimal.Decimal) error
}
