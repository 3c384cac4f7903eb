package mocks

import (
	"context"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
)

type MockSessionRepo struct {
	domain.SessionRepository
	GetAllFunc          func(ctx context.Context) ([]domain.Session, error)
	GetByDateFunc       func(ctx context.Context, date string) ([]domain.SessionWithMovie, error)
	GetDetailFunc       func(ctx context.Context, id int) (*domain.SessionDetail, error)
	CreateBatchFunc     func(ctx context.Context, sessions []domain.NewSession) error
	UpdateTimesFunc     func(ctx context.Context, updates []domain.SessionTimeUpdate) error
	SetStatusFunc       func(ctx context.Context, id int, status domain.SessionStatus) error
	SetStatusByHallFunc func(ctx context.Context, hallID int, status domain.SessionStatus) (*domain.StatusSummary, error)
	DeleteFunc          func(ctx context.Context, id int) error
}

func (m *MockSessionRepo) GetAll(ctx context.Context) ([]domain.Session, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockSessionRepo) GetByDate(ctx context.Context, date string) ([]domain.SessionWithMovie, error) {
	return m.GetByDateFunc(ctx, date)
}

func (m *MockSessionRepo) GetDetail(ctx context.Context, id int) (*domain.SessionDetail, error) {
	return m.GetDetailFunc(ctx, id)
}

func (m *MockSessionRepo) CreateBatch(ctx context.Context, sessions []domain.NewSession) error {
	return m.CreateBatchFunc(ctx, sessions)
}

func (m *MockSessionRepo) UpdateTimes(ctx context.Context, updates []domain.SessionTimeUpdate) error {
	return m.UpdateTimesFunc(ctx, updates)
}

func (m *MockSessionRepo) SetStatus(ctx context.Context, id int, status domain.SessionStatus) error {
	return m.SetStatusFunc(ctx, id, status)
}

func (m *MockSessionRepo) SetStatusByHall(ctx context.Context, hallID int, status domain.SessionStatus) (*domain.StatusSummary, error) {
	return m.SetStatusByHallFunc(ctx, hallID, status)
}

func (m *MockSessionRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
