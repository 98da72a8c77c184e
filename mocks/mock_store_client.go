package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartpantry/internal/port"
)

// MockStoreClient is a mock implementation of port.StoreClient.
type MockStoreClient struct {
	mock.Mock
}

func (m *MockStoreClient) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStoreClient) Search(ctx context.Context, query string) ([]port.StoreProduct, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.StoreProduct), args.Error(1)
}
