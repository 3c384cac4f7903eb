package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Movie struct {
	ID       int
	Title    string
	Synopsis string
	Duration string
	Origin   string
	Poster   string
}

// MovieShowtimes is a movie annotated with its open sessions on a given
// date, as served by the customer-facing catalog view.
type MovieShowtimes struct {
	Movie
	Sessions []ShowtimeSummary
}

type ShowtimeSummary struct {
	SessionID    int
	HallName     string
	Time         string
	RegularPrice decimal.Decimal
	VipPrice     decimal.Decimal
}

type MovieRepository interface {
	GetAll(ctx context.Context) ([]Movie, error)
	Create(ctx context.Context, movie *Movie) error
	GetByDateWithOpenSessions(ctx context.Context, date string) ([]MovieShowtimes, error)
}
