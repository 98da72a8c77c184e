package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartpantry/internal/port"
)

// MockRiskScorer is a mock implementation of port.RiskScorer.
type MockRiskScorer struct {
	mock.Mock
}

func (m *MockRiskScorer) Score(ctx context.Context, items []string) ([]port.RiskScore, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.RiskScore), args.Error(1)
}
