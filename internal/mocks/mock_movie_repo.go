package mocks

import (
	"context"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc                    func(ctx context.Context) ([]domain.Movie, error)
	CreateFunc                    func(ctx context.Context, movie *domain.Movie) error
	GetByDateWithOpenSessionsFunc func(ctx context.Context, date string) ([]domain.MovieShowtimes, error)
}

func (m *MockMovieRepo) GetAll(ctx context.Context) ([]domain.Movie, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) GetByDateWithOpenSessions(ctx context.Context, date string) ([]domain.MovieShowtimes, error) {
	return m.GetByDateWithOpenSessionsFunc(ctx, date)
}
