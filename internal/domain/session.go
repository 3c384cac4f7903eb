package domain

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// Session is a single scheduled screening of a movie in a hall. Dates are
// YYYY-MM-DD, times HH:MM.
type Session struct {
	ID      int
	MovieID int
	HallID  int
	Date    string
	Time    string
	Status  SessionStatus
}

type SessionWithMovie struct {
	Session
	MovieTitle    string
	MovieDuration string
	MoviePoster   string
}

// SessionDetail is the denormalized view backing the seat picker: the movie
// and the hall's seat grid and prices. Sold tickets live in the ticket
// ledger and are fetched separately.
type SessionDetail struct {
	Session
	Movie        Movie
	HallName     string
	Seats        SeatMap
	RegularPrice decimal.Decimal
	VipPrice     decimal.Decimal
}

// SeatPrice resolves the selling price of one seat for this session. It
// reports ErrSessionNotOpen when the session is off sale, ErrInvalidSeatMap
// when the coordinate falls outside the hall's grid and ErrSeatNotSellable
// for disabled seats.
func (d *SessionDetail) SeatPrice(row, col int) (decimal.Decimal, error) {
	if d.Status != SessionOpen {
		return decimal.Decimal{}, ErrSessionNotOpen
	}

	category, ok := d.Seats.CategoryAt(row, col)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no seat at row %d, column %d", ErrInvalidSeatMap, row, col)
	}

	hall := Hall{RegularPrice: d.RegularPrice, VipPrice: d.VipPrice}

	return hall.PriceFor(category)
}

type NewSession struct {
	MovieID int
	HallID  int
	Date    string
	Time    string
}

type SessionTimeUpdate struct {
	ID   int
	Time string
}

// StatusSummary reports the outcome of a bulk status change: sessions with
// sold tickets are skipped, never failed.
type StatusSummary struct {
	Updated int
	Skipped int
}

type SessionRepository interface {
	GetAll(ctx context.Context) ([]Session, error)
	GetByDate(ctx context.Context, date string) ([]SessionWithMovie, error)
	GetDetail(ctx context.Context, id int) (*SessionDetail, error)
	CreateBatch(ctx context.Context, sessions []NewSession) error
	UpdateTimes(ctx context.Context, updates []SessionTimeUpdate) error
	SetStatus(ctx context.Context, id int, status SessionStatus) error
	SetStatusByHall(ctx context.Context, hallID int, status SessionStatus) (*StatusSummary, error)
	Delete(ctx context.Context, id int) error
}
