// Command seed populates a fresh database with a demo catalog: a few movies,
// two configured halls and a week of open sessions. It is meant for local
// development and manual testing, not production.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/avolkaev/cinema-booking-system/internal/app"
	"github.com/avolkaev/cinema-booking-system/internal/domain"
	"github.com/avolkaev/cinema-booking-system/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type seeder struct {
	logger      *slog.Logger
	movieRepo   domain.MovieRepository
	hallRepo    domain.HallRepository
	sessionRepo domain.SessionRepository
}

func main() {
	dsn := flag.String("db-dsn", "", "PostgreSQL DSN")
	migrate := flag.Bool("migrate", true, "Apply database migrations before seeding")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *migrate {
		err := app.Migrate(*dsn)
		if err != nil {
			logger.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	db, err := pgxpool.New(context.Background(), *dsn)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	s := &seeder{
		logger:      logger,
		movieRepo:   repository.NewPostgresMovieRepository(db),
		hallRepo:    repository.NewPostgresHallRepository(db),
		sessionRepo: repository.NewPostgresSessionRepository(db),
	}

	err = s.run(context.Background())
	if err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeding completed")
}

func (s *seeder) run(ctx context.Context) error {
	movieIDs, err := s.seedMovies(ctx)
	if err != nil {
		return err
	}

	hallIDs, err := s.seedHalls(ctx)
	if err != nil {
		return err
	}

	return s.seedSessions(ctx, movieIDs, hallIDs)
}

func (s *seeder) seedMovies(ctx context.Context) ([]int, error) {
	movies := []domain.Movie{
		{
			Title:    "The Silent Harbor",
			Synopsis: "A retired detective returns to his coastal hometown and finds that the harbor keeps its secrets well.",
			Duration: "2h 14m",
			Origin:   "USA",
			Poster:   "/posters/the-silent-harbor.jpg",
		},
		{
			Title:    "Paper Planes",
			Synopsis: "Two estranged siblings reconnect over their late father's collection of undelivered letters.",
			Duration: "1h 48m",
			Origin:   "France",
			Poster:   "/posters/paper-planes.jpg",
		},
		{
			Title:    "Midnight Circuit",
			Synopsis: "An underground racing crew takes one last job that puts everything they have on the line.",
			Duration: "2h 02m",
			Origin:   "Japan",
			Poster:   "/posters/midnight-circuit.jpg",
		},
	}

	ids := make([]int, 0, len(movies))

	for i := range movies {
		err := s.movieRepo.Create(ctx, &movies[i])
		if err != nil {
			return nil, err
		}

		ids = append(ids, movies[i].ID)
		s.logger.Info("created movie", "id", movies[i].ID, "title", movies[i].Title)
	}

	return ids, nil
}

// seedHalls creates two halls with configured seat grids: a large hall with a
// VIP back row and aisle gaps, and a small hall of standard seats only.
func (s *seeder) seedHalls(ctx context.Context) ([]int, error) {
	halls := []domain.Hall{
		{
			Name:         "Grand Hall",
			Seats:        hallLayout(8, 12, 2),
			RegularPrice: decimal.NewFromInt(300),
			VipPrice:     decimal.NewFromInt(500),
		},
		{
			Name:         "Studio 2",
			Seats:        hallLayout(5, 8, 0),
			RegularPrice: decimal.NewFromInt(250),
			VipPrice:     decimal.NewFromInt(400),
		},
	}

	ids := make([]int, 0, len(halls))

	for i := range halls {
		err := s.hallRepo.Create(ctx, &halls[i])
		if err != nil {
			return nil, err
		}

		ids = append(ids, halls[i].ID)
		s.logger.Info("created hall", "id", halls[i].ID, "name", halls[i].Name)
	}

	return ids, nil
}

// hallLayout builds a rows x cols grid where the last vipRows rows are VIP
// and the two corner seats of the first row are disabled.
func hallLayout(rows, cols, vipRows int) domain.SeatMap {
	seats := make(domain.SeatMap, 0, rows)

	for i := 0; i < rows; i++ {
		row := make([]domain.SeatCategory, cols)

		for j := range row {
			if i >= rows-vipRows {
				row[j] = domain.SeatVIP
			} else {
				row[j] = domain.SeatStandard
			}
		}

		if i == 0 {
			row[0] = domain.SeatDisabled
			row[cols-1] = domain.SeatDisabled
		}

		seats = append(seats, row)
	}

	return seats
}

// seedSessions schedules every movie across both halls for the next seven
// days and opens everything for booking.
func (s *seeder) seedSessions(ctx context.Context, movieIDs, hallIDs []int) error {
	times := []string{"14:00", "17:30", "21:00"}

	var sessions []domain.NewSession

	for day := 0; day < 7; day++ {
		date := time.Now().AddDate(0, 0, day).Format("2006-01-02")

		for i, movieID := range movieIDs {
			sessions = append(sessions, domain.NewSession{
				MovieID: movieID,
				HallID:  hallIDs[i%len(hallIDs)],
				Date:    date,
				Time:    times[i%len(times)],
			})
		}
	}

	err := s.sessionRepo.CreateBatch(ctx, sessions)
	if err != nil {
		return err
	}

	s.logger.Info("created sessions", "count", len(sessions))

	for _, hallID := range hallIDs {
		summary, err := s.sessionRepo.SetStatusByHall(ctx, hallID, domain.SessionOpen)
		if err != nil {
			return err
		}

		s.logger.Info("opened sessions", "hallId", hallID, "updated", summary.Updated)
	}

	return nil
}
