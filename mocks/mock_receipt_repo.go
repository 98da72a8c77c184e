package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"smartpantry/internal/domain"
)

// MockReceiptRepo is a mock implementation of port.ReceiptRepository.
type MockReceiptRepo struct {
	mock.Mock
}

func (m *MockReceiptRepo) Create(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error {
	args := m.Called(ctx, receipt, items)
	return args.Error(0)
}

func (m *MockReceiptRepo) GetByID(ctx context.Context, userID, receiptID uuid.UUID) (*domain.Receipt, error) {
	args := m.Called(ctx, userID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Receipt), args.Int(1), args.Error(2)
}

func (m *MockReceiptRepo) ListItems(ctx context.Context, userID, receiptID uuid.UUID) ([]domain.ReceiptItem, error) {
	args := m.Called(ctx, userID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptItem), args.Error(1)
}

func (m *MockReceiptRepo) UpdateScanStatus(ctx context.Context, receiptID uuid.UUID, status domain.ScanStatus, scanError string) error {
	args := m.Called(ctx, receiptID, status, scanError)
	return args.Error(0)
}

func (m *MockReceiptRepo) Delete(ctx context.Context, userID, receiptID uuid.UUID) error {
	args := m.Called(ctx, userID, receiptID)
	return args.Error(0)
}

func (m *MockReceiptRepo) ClaimNextPending(ctx context.Context) (*domain.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepo) CompleteScan(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error {
	args := m.Called(ctx, receipt, items)
	return args.Error(0)
}
