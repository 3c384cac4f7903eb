package mocks

import (
	"context"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
	"github.com/shopspring/decimal"
)

type MockHallRepo struct {
	domain.HallRepository
	GetAllFunc        func(ctx context.Context) ([]domain.Hall, error)
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Hall, error)
	CreateFunc        func(ctx context.Context, hall *domain.Hall) error
	DeleteFunc        func(ctx context.Context, id int) error
	UpdateSeatMapFunc func(ctx context.Context, id int, seats domain.SeatMap) error
	UpdatePricesFunc  func(ctx context.Context, id int, regular, vip decimal.Decimal) error
}

func (m *MockHallRepo) GetAll(ctx context.Context) ([]domain.Hall, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockHallRepo) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockHallRepo) Create(ctx context.Context, hall *domain.Hall) error {
	return m.CreateFunc(ctx, hall)
}

func (m *MockHallRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockHallRepo) UpdateSeatMap(ctx context.Context, id int, seats domain.SeatMap) error {
	return m.UpdateSeatMapFunc(ctx, id, seats)
}

func (m *MockHallRepo) UpdatePrices(ctx context.Context, id int, regular, vip decimal.Decimal) error {
	return m.UpdatePricesFunc(ctx, id, regular, vip)
}
