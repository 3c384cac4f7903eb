package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

func (p *PostgresSessionRepository) GetAll(ctx context.Context) ([]domain.Session, error) {
	query := `
		SELECT id, movie_id, hall_id, to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI'), status
		FROM sessions
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)

	for rows.Next() {
		var session domain.Session

		err = rows.Scan(
			&session.ID,
			&session.MovieID,
			&session.HallID,
			&session.Date,
			&session.Time,
			&session.Status,
		)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (p *PostgresSessionRepository) GetByDate(ctx context.Context, date string) ([]domain.SessionWithMovie, error) {
	query := `
		SELECT
			s.id, s.movie_id, s.hall_id, to_char(s.date, 'YYYY-MM-DD'), to_char(s.time, 'HH24:MI'), s.status,
			m.title, m.duration, m.poster
		FROM sessions s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.date = $1::date
		ORDER BY s.time, s.id
	`

	rows, err := p.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.SessionWithMovie, 0)

	for rows.Next() {
		var session domain.SessionWithMovie

		err = rows.Scan(
			&session.ID,
			&session.MovieID,
			&session.HallID,
			&session.Date,
			&session.Time,
			&session.Status,
			&session.MovieTitle,
			&session.MovieDuration,
			&session.MoviePoster,
		)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (p *PostgresSessionRepository) GetDetail(ctx context.Context, id int) (*domain.SessionDetail, error) {
	query := `
		SELECT
			s.id, s.movie_id, s.hall_id, to_char(s.date, 'YYYY-MM-DD'), to_char(s.time, 'HH24:MI'), s.status,
			m.title, m.synopsis, m.duration, m.origin, m.poster,
			h.name, h.seats, h.price_regular::text, h.price_vip::text
		FROM sessions s
		JOIN movies m ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		WHERE s.id = $1
	`

	var (
		detail       domain.SessionDetail
		seats        []byte
		regularPrice string
		vipPrice     string
	)

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.MovieID,
		&detail.HallID,
		&detail.Date,
		&detail.Time,
		&detail.Status,
		&detail.Movie.Title,
		&detail.Movie.Synopsis,
		&detail.Movie.Duration,
		&detail.Movie.Origin,
		&detail.Movie.Poster,
		&detail.HallName,
		&seats,
		&regularPrice,
		&vipPrice,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	detail.Movie.ID = detail.MovieID

	err = json.Unmarshal(seats, &detail.Seats)
	if err != nil {
		return nil, err
	}

	detail.RegularPrice, err = decimal.NewFromString(regularPrice)
	if err != nil {
		return nil, err
	}

	detail.VipPrice, err = decimal.NewFromString(vipPrice)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// CreateBatch inserts every session with status "closed". Newly scheduled
// sessions go on sale only after an explicit status change.
func (p *PostgresSessionRepository) CreateBatch(ctx context.Context, sessions []domain.NewSession) error {
	query := `
		INSERT INTO sessions (movie_id, hall_id, time, date, status)
		VALUES ($1, $2, $3::time, $4::date, 'closed')
	`

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}

		for _, session := range sessions {
			batch.Queue(query, session.MovieID, session.HallID, session.Time, session.Date)
		}

		return tx.SendBatch(ctx, batch).Close()
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

// UpdateTimes applies a batch of time edits in one transaction. An unknown
// session id fails the whole batch with ErrRecordNotFound. Time edits are
// allowed even for sessions with sold tickets.
func (p *PostgresSessionRepository) UpdateTimes(ctx context.Context, updates []domain.SessionTimeUpdate) error {
	query := `UPDATE sessions SET time = $1::time WHERE id = $2`

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		for _, update := range updates {
			tag, err := tx.Exec(ctx, query, update.Time, update.ID)
			if err != nil {
				return err
			}

			if tag.RowsAffected() == 0 {
				return domain.ErrRecordNotFound
			}
		}

		return nil
	})
}

// SetStatus flips a session between open and closed. The ledger check is
// part of the UPDATE itself; a session with sold tickets is left unchanged.
func (p *PostgresSessionRepository) SetStatus(ctx context.Context, id int, status domain.SessionStatus) error {
	query := `
		UPDATE sessions
		SET status = $1
		WHERE id = $2 AND NOT EXISTS (
			SELECT 1 FROM sold_tickets WHERE session_id = $2
		)
	`

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, status, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() > 0 {
			return nil
		}

		var exists bool

		err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}

		if !exists {
			return domain.ErrRecordNotFound
		}

		return domain.ErrSessionHasSoldTickets
	})
}

// SetStatusByHall updates every session under the hall that differs from the
// target status and has no sold tickets, and counts the rest as skipped. One
// locked session never fails the batch.
func (p *PostgresSessionRepository) SetStatusByHall(
	ctx context.Context,
	hallID int,
	status domain.SessionStatus) (*domain.StatusSummary, error) {

	updateQuery := `
		UPDATE sessions
		SET status = $1
		WHERE hall_id = $2 AND status <> $1 AND id NOT IN (
			SELECT session_id FROM sold_tickets
		)
	`

	skippedQuery := `
		SELECT COUNT(*) FROM sessions
		WHERE hall_id = $2 AND status <> $1 AND id IN (
			SELECT session_id FROM sold_tickets
		)
	`

	var summary domain.StatusSummary

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updateQuery, status, hallID)
		if err != nil {
			return err
		}

		summary.Updated = int(tag.RowsAffected())

		return tx.QueryRow(ctx, skippedQuery, status, hallID).Scan(&summary.Skipped)
	})

	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// Delete removes a session and cascades to its tickets, but only when no
// ticket has been sold, the same freeze rule that guards hall deletion.
func (p *PostgresSessionRepository) Delete(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var hasTickets bool

		err := tx.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM sold_tickets WHERE session_id = $1)`,
			id,
		).Scan(&hasTickets)
		if err != nil {
			return err
		}

		if hasTickets {
			return domain.ErrSessionHasSoldTickets
		}

		tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}
