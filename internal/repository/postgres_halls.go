package repository

import (
	"context"
	"encoding/json"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

// hallHasSoldTicketsQuery answers whether any session under a hall has a
// sold ticket, the condition that freezes the hall's seat map, prices and
// deletion.
const hallHasSoldTicketsQuery = `
	SELECT 1 FROM sold_tickets st
	JOIN sessions s ON st.session_id = s.id
	WHERE s.hall_id = $1
`

func (p *PostgresHallRepository) GetAll(ctx context.Context) ([]domain.Hall, error) {
	query := `
		SELECT id, name, seats, price_regular::text, price_vip::text
		FROM halls
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]domain.Hall, 0)

	for rows.Next() {
		hall, err := scanHall(rows)
		if err != nil {
			return nil, err
		}

		halls = append(halls, *hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}

func (p *PostgresHallRepository) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	query := `
		SELECT id, name, seats, price_regular::text, price_vip::text
		FROM halls
		WHERE id = $1
	`

	rows, err := p.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}

		return nil, domain.ErrRecordNotFound
	}

	return scanHall(rows)
}

func (p *PostgresHallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	seats, err := json.Marshal(hall.Seats)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO halls (name, seats, price_regular, price_vip)
		VALUES ($1, $2, $3::numeric, $4::numeric)
		RETURNING id
	`

	return p.db.QueryRow(
		ctx,
		query,
		hall.Name,
		seats,
		hall.RegularPrice.String(),
		hall.VipPrice.String(),
	).Scan(&hall.ID)
}

// Delete removes a hall and cascades to its sessions. Sold tickets are
// checked before open sessions: ticket presence is the reported reason even
// when both hold.
func (p *PostgresHallRepository) Delete(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var blocked bool

		err := tx.QueryRow(ctx, `SELECT EXISTS (`+hallHasSoldTicketsQuery+`)`, id).Scan(&blocked)
		if err != nil {
			return err
		}

		if blocked {
			return domain.ErrHallHasSoldTickets
		}

		err = tx.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM sessions WHERE hall_id = $1 AND status = 'open')`,
			id,
		).Scan(&blocked)
		if err != nil {
			return err
		}

		if blocked {
			return domain.ErrHallHasOpenSessions
		}

		tag, err := tx.Exec(ctx, `DELETE FROM halls WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func (p *PostgresHallRepository) UpdateSeatMap(ctx context.Context, id int, seatMap domain.SeatMap) error {
	seats, err := json.Marshal(seatMap)
	if err != nil {
		return err
	}

	query := `
		UPDATE halls
		SET seats = $1
		WHERE id = $2 AND NOT EXISTS (
			SELECT 1 FROM sold_tickets st
			JOIN sessions s ON st.session_id = s.id
			WHERE s.hall_id = $2
		)
	`

	return p.gatedUpdate(ctx, id, query, seats, id)
}

func (p *PostgresHallRepository) UpdatePrices(ctx context.Context, id int, regular, vip decimal.Decimal) error {
	query := `
		UPDATE halls
		SET price_regular = $1::numeric, price_vip = $2::numeric
		WHERE id = $3 AND NOT EXISTS (
			SELECT 1 FROM sold_tickets st
			JOIN sessions s ON st.session_id = s.id
			WHERE s.hall_id = $3
		)
	`

	return p.gatedUpdate(ctx, id, query, regular.String(), vip.String(), id)
}

// gatedUpdate runs a conditional update whose WHERE clause embeds the
// sold-ticket check, then disambiguates a zero row count inside the same
// transaction: missing hall vs. hall frozen by sold tickets.
func (p *PostgresHallRepository) gatedUpdate(ctx context.Context, id int, query string, args ...any) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}

		if tag.RowsAffected() > 0 {
			return nil
		}

		var exists bool

		err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM halls WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}

		if !exists {
			return domain.ErrRecordNotFound
		}

		return domain.ErrHallHasSoldTickets
	})
}

func scanHall(rows pgx.Rows) (*domain.Hall, error) {
	var (
		hall         domain.Hall
		seats        []byte
		regularPrice string
		vipPrice     string
	)

	err := rows.Scan(&hall.ID, &hall.Name, &seats, &regularPrice, &vipPrice)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(seats, &hall.Seats)
	if err != nil {
		return nil, err
	}

	hall.RegularPrice, err = decimal.NewFromString(regularPrice)
	if err != nil {
		return nil, err
	}

	hall.VipPrice, err = decimal.NewFromString(vipPrice)
	if err != nil {
		return nil, err
	}

	return &hall, nil
}
