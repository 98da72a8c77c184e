package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"smartpantry/internal/domain"
)

// MockNutritionRepo is a mock implementation of port.NutritionRepository.
type MockNutritionRepo struct {
	mock.Mock
}

func (m *MockNutritionRepo) Create(ctx context.Context, entry *domain.NutritionEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockNutritionRepo) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.NutritionEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NutritionEntry), args.Error(1)
}

func (m *MockNutritionRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.NutritionEntry, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.NutritionEntry), args.Int(1), args.Error(2)
}

func (m *MockNutritionRepo) ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.NutritionEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NutritionEntry), args.Error(1)
}

func (m *MockNutritionRepo) Update(ctx context.Context, entry *domain.NutritionEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockNutritionRepo) Delete(ctx context.Context, entryID uuid.UUID) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}
