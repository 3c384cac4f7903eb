package mocks

import (
	"context"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
)

type MockAdminRepo struct {
	domain.AdminRepository
	CreateFunc     func(ctx context.Context, admin *domain.Admin) error
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Admin, error)
	ExistsFunc     func(ctx context.Context, id int) (bool, error)
}

func (m *MockAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	return m.CreateFunc(ctx, admin)
}

func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockAdminRepo) Exists(ctx context.Context, id int) (bool, error) {
	return m.ExistsFunc(ctx, id)
}
