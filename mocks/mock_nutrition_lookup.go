package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartpantry/internal/port"
)

// MockNutritionLookup is a mock implementation of port.NutritionLookup.
type MockNutritionLookup struct {
	mock.Mock
}

func (m *MockNutritionLookup) Lookup(ctx context.Context, item string, quantity float64, unit string) (*port.FoodNutrients, error) {
	args := m.Called(ctx, item, quantity, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.FoodNutrients), args.Error(1)
}
