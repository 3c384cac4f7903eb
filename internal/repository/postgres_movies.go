package repository

import (
	"context"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context) ([]domain.Movie, error) {
	query := `
		SELECT id, title, synopsis, duration, origin, poster
		FROM movies
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Synopsis,
			&movie.Duration,
			&movie.Origin,
			&movie.Poster,
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, synopsis, duration, origin, poster)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Synopsis,
		movie.Duration,
		movie.Origin,
		movie.Poster,
	).Scan(&movie.ID)
}

// GetByDateWithOpenSessions returns the movies having at least one open
// session on the given date, each with its open sessions. Movies whose
// sessions on that date are all closed are omitted by the status filter.
func (p *PostgresMovieRepository) GetByDateWithOpenSessions(
	ctx context.Context,
	date string) ([]domain.MovieShowtimes, error) {

	query := `
		SELECT
			m.id, m.title, m.synopsis, m.duration, m.origin, m.poster,
			s.id, h.name, to_char(s.time, 'HH24:MI'),
			h.price_regular::text, h.price_vip::text
		FROM movies m
		JOIN sessions s ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		WHERE s.date = $1::date AND s.status = 'open'
		ORDER BY m.id, s.time
	`

	rows, err := p.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Rows are pre-sorted by movie ID, so grouping is a single pass.
	movies := make([]domain.MovieShowtimes, 0)

	for rows.Next() {
		var (
			movie        domain.Movie
			showtime     domain.ShowtimeSummary
			regularPrice string
			vipPrice     string
		)

		err = rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Synopsis,
			&movie.Duration,
			&movie.Origin,
			&movie.Poster,
			&showtime.SessionID,
			&showtime.HallName,
			&showtime.Time,
			&regularPrice,
			&vipPrice,
		)
		if err != nil {
			return nil, err
		}

		showtime.RegularPrice, err = decimal.NewFromString(regularPrice)
		if err != nil {
			return nil, err
		}

		showtime.VipPrice, err = decimal.NewFromString(vipPrice)
		if err != nil {
			return nil, err
		}

		if len(movies) == 0 || movies[len(movies)-1].ID != movie.ID {
			movies = append(movies, domain.MovieShowtimes{Movie: movie})
		}

		last := &movies[len(movies)-1]
		last.Sessions = append(last.Sessions, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}
