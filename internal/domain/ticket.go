package domain

import (
	"context"
	"time"
)

// TicketTaken is the only status the booking flow produces today.
const TicketTaken = "taken"

// SoldTicket is a claimed seat for a session. The presence of any sold
// ticket freezes the parent hall's seat map and prices and blocks status
// changes and deletion of its session.
type SoldTicket struct {
	ID        int
	SessionID int
	Row       int
	Column    int
	Status    string
	CreatedAt time.Time
}

type TicketRepository interface {
	// ClaimSeat marks a seat taken with idempotent upsert semantics:
	// repeated and concurrent claims for the same coordinate converge to a
	// single stored ticket.
	ClaimSeat(ctx context.Context, sessionID, row, col int) (*SoldTicket, error)
	GetBySession(ctx context.Context, sessionID int) ([]SoldTicket, error)
}
