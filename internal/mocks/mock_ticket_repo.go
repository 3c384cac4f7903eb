package mocks

import (
	"context"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
)

type MockTicketRepo struct {
	domain.TicketRepository
	ClaimSeatFunc    func(ctx context.Context, sessionID, row, col int) (*domain.SoldTicket, error)
	GetBySessionFunc func(ctx context.Context, sessionID int) ([]domain.SoldTicket, error)
}

func (m *MockTicketRepo) ClaimSeat(ctx context.Context, sessionID, row, col int) (*domain.SoldTicket, error) {
	return m.ClaimSeatFunc(ctx, sessionID, row, col)
}

func (m *MockTicketRepo) GetBySession(ctx context.Context, sessionID int) ([]domain.SoldTicket, error) {
	return m.GetBySessionFunc(ctx, sessionID)
}
