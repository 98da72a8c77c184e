package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartpantry/internal/domain"
)

// MockFoodReferenceRepo is a mock implementation of port.FoodReferenceRepository.
type MockFoodReferenceRepo struct {
	mock.Mock
}

func (m *MockFoodReferenceRepo) Upsert(ctx context.Context, foods []domain.FoodReference) error {
	args := m.Called(ctx, foods)
	return args.Error(0)
}

func (m *MockFoodReferenceRepo) SearchByName(ctx context.Context, name string) (*domain.FoodReference, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FoodReference), args.Error(1)
}
