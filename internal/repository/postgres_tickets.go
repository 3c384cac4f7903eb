package repository

import (
	"context"
	"errors"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

// ClaimSeat marks a seat taken. The upsert is one atomic statement, so two
// concurrent first-claims for the same coordinate resolve to a single row
// through the composite uniqueness constraint, and a retried claim is a
// no-op rather than an error.
func (p *PostgresTicketRepository) ClaimSeat(ctx context.Context, sessionID, row, col int) (*domain.SoldTicket, error) {
	query := `
		INSERT INTO sold_tickets (session_id, seat_row, seat_column, status)
		VALUES ($1, $2, $3, 'taken')
		ON CONFLICT (session_id, seat_row, seat_column)
		DO UPDATE SET status = 'taken'
		RETURNING id, session_id, seat_row, seat_column, status, created_at
	`

	var ticket domain.SoldTicket

	err := p.db.QueryRow(ctx, query, sessionID, row, col).Scan(
		&ticket.ID,
		&ticket.SessionID,
		&ticket.Row,
		&ticket.Column,
		&ticket.Status,
		&ticket.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticket, nil
}

func (p *PostgresTicketRepository) GetBySession(ctx context.Context, sessionID int) ([]domain.SoldTicket, error) {
	query := `
		SELECT id, session_id, seat_row, seat_column, status, created_at
		FROM sold_tickets
		WHERE session_id = $1
		ORDER BY seat_row, seat_column
	`

	rows, err := p.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.SoldTicket, 0)

	for rows.Next() {
		var ticket domain.SoldTicket

		err = rows.Scan(
			&ticket.ID,
			&ticket.SessionID,
			&ticket.Row,
			&ticket.Column,
			&ticket.Status,
			&ticket.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
