package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"smartpantry/internal/domain"
	"smartpantry/internal/port"
)

// ScanQueueConfig holds settings for the receipt scan worker.
type ScanQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
}

// ScanQueueWorker polls for pending receipts and dispatches them for OCR.
type ScanQueueWorker struct {
	receiptRepo    port.ReceiptRepository
	receiptService ReceiptService
	cfg            ScanQueueConfig
	wg             sync.WaitGroup
}

// NewScanQueueWorker creates a new ScanQueueWorker.
func NewScanQueueWorker(receiptRepo port.ReceiptRepository, receiptService ReceiptService, cfg ScanQueueConfig) *ScanQueueWorker {
	return &ScanQueueWorker{
		receiptRepo:    receiptRepo,
		receiptService: receiptService,
		cfg:            cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight scans have finished.
func (w *ScanQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("scanQueueWorker: started (poll=%s, concurrency=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("scanQueueWorker: shutting down, waiting for in-flight scans...")
			w.wg.Wait()
			log.Printf("scanQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			w.drainPending(ctx, sem)
		}
	}
}

// drainPending claims receipts until the queue is empty or all scan slots
// are taken.
func (w *ScanQueueWorker) drainPending(ctx context.Context, sem chan struct{}) {
	for len(sem) < w.cfg.Concurrency {
		receipt, err := w.receiptRepo.ClaimNextPending(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || ctx.Err() != nil {
				return
			}
			log.Printf("scanQueueWorker: claim error: %v", err)
			return
		}

		sem <- struct{}{} // acquire
		w.wg.Add(1)
		go func(r *domain.Receipt) {
			defer w.wg.Done()
			defer func() { <-sem }() // release

			// Fresh context so in-flight scans survive shutdown of the
			// poll loop.
			scanCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			log.Printf("scanQueueWorker: dispatching receipt %s", r.ID)
			w.receiptService.ProcessReceipt(scanCtx, r)
		}(receipt)
	}
}
