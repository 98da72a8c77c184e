package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartpantry/internal/domain"
	"smartpantry/internal/service"
	"smartpantry/mocks"
)

func workerConfig() service.ScanQueueConfig {
	return service.ScanQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  2,
	}
}

func TestScanQueueWorker_DispatchesPendingReceipt(t *testing.T) {
	receiptRepo := new(mocks.MockReceiptRepo)
	receiptService := new(mocks.MockReceiptService)
	worker := service.NewScanQueueWorker(receiptRepo, receiptService, workerConfig())

	receipt := &domain.Receipt{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		ScanStatus: domain.ScanStatusProcessing,
	}

	receiptRepo.On("ClaimNextPending", mock.Anything).Return(receipt, nil).Once()
	receiptRepo.On("ClaimNextPending", mock.Anything).Return(nil, domain.ErrNotFound).Maybe()
	receiptService.On("ProcessReceipt", mock.Anything, receipt).Once()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	receiptService.AssertCalled(t, "ProcessReceipt", mock.Anything, receipt)
	receiptService.AssertExpectations(t)
}

func TestScanQueueWorker_EmptyQueue(t *testing.T) {
	receiptRepo := new(mocks.MockReceiptRepo)
	receiptService := new(mocks.MockReceiptService)
	worker := service.NewScanQueueWorker(receiptRepo, receiptService, workerConfig())

	receiptRepo.On("ClaimNextPending", mock.Anything).Return(nil, domain.ErrNotFound).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	receiptService.AssertNotCalled(t, "ProcessReceipt", mock.Anything, mock.Anything)
}

func TestScanQueueWorker_ClaimErrorDoesNotStopPolling(t *testing.T) {
	receiptRepo := new(mocks.MockReceiptRepo)
	receiptService := new(mocks.MockReceiptService)
	worker := service.NewScanQueueWorker(receiptRepo, receiptService, workerConfig())

	receipt := &domain.Receipt{ID: uuid.New(), UserID: uuid.New()}

	// First poll hits a transient claim error; a later poll succeeds.
	receiptRepo.On("ClaimNextPending", mock.Anything).Return(nil, errors.New("connection reset")).Once()
	receiptRepo.On("ClaimNextPending", mock.Anything).Return(receipt, nil).Once()
	receiptRepo.On("ClaimNextPending", mock.Anything).Return(nil, domain.ErrNotFound).Maybe()
	receiptService.On("ProcessReceipt", mock.Anything, receipt).Once()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	receiptService.AssertCalled(t, "ProcessReceipt", mock.Anything, receipt)
}

func TestScanQueueWorker_WaitsForInFlightScans(t *testing.T) {
	receiptRepo := new(mocks.MockReceiptRepo)
	receiptService := new(mocks.MockReceiptService)
	worker := service.NewScanQueueWorker(receiptRepo, receiptService, workerConfig())

	receipt := &domain.Receipt{ID: uuid.New(), UserID: uuid.New()}
	scanFinished := false

	receiptRepo.On("ClaimNextPending", mock.Anything).Return(receipt, nil).Once()
	receiptRepo.On("ClaimNextPending", mock.Anything).Return(nil, domain.ErrNotFound).Maybe()
	receiptService.On("ProcessReceipt", mock.Anything, receipt).
		Run(func(args mock.Arguments) {
			time.Sleep(150 * time.Millisecond)
			scanFinished = true
		}).Once()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Cancel while the scan is still running; Start must block until it ends.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	assert.True(t, scanFinished)
}
