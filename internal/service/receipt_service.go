package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/google/uuid"

	"smartpantry/internal/domain"
	"smartpantry/internal/port"
	"smartpantry/internal/scanner"
)

// Items whose recognized sum strays this far from the declared total (as a
// fraction of the declared total) are flagged for manual review.
const suspectDifferenceRatio = 0.5

// ScanResult is the outcome of one OCR pass over a receipt image.
type ScanResult struct {
	StoreName   string             `json:"store_name"`
	BillNumber  string             `json:"bill_number"`
	Date        string             `json:"date"`
	TotalAmount float64            `json:"total_amount"`
	Items       []scanner.LineItem `json:"items"`
	Summary     domain.ScanSummary `json:"summary"`
}

// CreateReceiptInput is the DTO for manually confirmed receipt saves.
type CreateReceiptInput struct {
	StoreName   string            `json:"store_name"`
	BillNumber  string            `json:"bill_number"`
	Date        string            `json:"date"`
	TotalAmount float64           `json:"total_amount"`
	Items       []CreateItemInput `json:"items"`
}

// CreateItemInput is one line item in a manual receipt save.
type CreateItemInput struct {
	ItemName   string  `json:"item_name" binding:"required"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// ReceiptService defines the receipt scanning and persistence contract.
type ReceiptService interface {
	// ScanImage runs OCR and structure extraction over an image on local
	// disk without persisting anything.
	ScanImage(ctx context.Context, path string) (*ScanResult, error)

	// CreateFromUpload registers a pending receipt for an uploaded image;
	// the scan queue worker picks it up asynchronously.
	CreateFromUpload(ctx context.Context, userID, fileID uuid.UUID) (*domain.Receipt, error)

	// ProcessReceipt performs the full scan for one claimed receipt:
	// download, OCR, parse, reconcile, persist.
	ProcessReceipt(ctx context.Context, receipt *domain.Receipt)

	Create(ctx context.Context, userID uuid.UUID, input CreateReceiptInput) (*domain.Receipt, error)
	GetByID(ctx context.Context, userID, receiptID uuid.UUID) (*domain.Receipt, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error)
	ListItems(ctx context.Context, userID, receiptID uuid.UUID) ([]domain.ReceiptItem, error)
	Delete(ctx context.Context, userID, receiptID uuid.UUID) error
}

type receiptService struct {
	receiptRepo port.ReceiptRepository
	fileRepo    port.FileMetaRepository
	storage     port.ObjectStorage
	extractor   port.TextExtractor
}

// NewReceiptService creates a new ReceiptService implementation.
func NewReceiptService(
	receiptRepo port.ReceiptRepository,
	fileRepo port.FileMetaRepository,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
) ReceiptService {
	return &receiptService{
		receiptRepo: receiptRepo,
		fileRepo:    fileRepo,
		storage:     storage,
		extractor:   extractor,
	}
}

func (s *receiptService) ScanImage(ctx context.Context, path string) (*ScanResult, error) {
	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("receiptService.ScanImage: %w", err)
	}

	rec := scanner.Parse(text)
	return &ScanResult{
		StoreName:   rec.StoreName,
		BillNumber:  rec.BillNumber,
		Date:        rec.Date,
		TotalAmount: rec.TotalAmount,
		Items:       rec.Items,
		Summary:     reconcile(&rec),
	}, nil
}

// reconcile compares the recognized line item sum against the declared
// total. A missing declared total is never marked suspect; there is nothing
// to reconcile against.
func reconcile(rec *scanner.ReceiptRecord) domain.ScanSummary {
	itemsTotal := rec.ItemsTotal()
	diff := math.Abs(itemsTotal - rec.TotalAmount)
	return domain.ScanSummary{
		ItemsTotal:    itemsTotal,
		DeclaredTotal: rec.TotalAmount,
		Difference:    diff,
		Suspect:       rec.TotalAmount > 0 && diff > rec.TotalAmount*suspectDifferenceRatio,
	}
}

func (s *receiptService) CreateFromUpload(ctx context.Context, userID, fileID uuid.UUID) (*domain.Receipt, error) {
	meta, err := s.fileRepo.GetByID(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if meta.Status != domain.FileStatusUploaded {
		return nil, domain.ErrNotFound
	}

	receipt := &domain.Receipt{
		UserID:     userID,
		FileID:     &meta.ID,
		ScanStatus: domain.ScanStatusPending,
	}
	if err := s.receiptRepo.Create(ctx, receipt, nil); err != nil {
		return nil, err
	}
	log.Printf("receiptService.CreateFromUpload: queued receipt %s (file %s) for user %s",
		receipt.ID, fileID, userID)
	return receipt, nil
}

// ProcessReceipt never returns an error; the outcome lands in the receipt's
// scan status so failures are visible to the owner.
func (s *receiptService) ProcessReceipt(ctx context.Context, receipt *domain.Receipt) {
	if receipt.FileID == nil {
		s.failScan(ctx, receipt.ID, "receipt has no attached image")
		return
	}

	meta, err := s.fileRepo.GetByID(ctx, receipt.UserID, *receipt.FileID)
	if err != nil {
		s.failScan(ctx, receipt.ID, fmt.Sprintf("loading file metadata: %v", err))
		return
	}

	path, cleanup, err := s.downloadToTemp(ctx, meta)
	if err != nil {
		s.failScan(ctx, receipt.ID, fmt.Sprintf("downloading image: %v", err))
		return
	}
	defer cleanup()

	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		s.failScan(ctx, receipt.ID, fmt.Sprintf("ocr: %v", err))
		return
	}

	rec := scanner.Parse(text)
	summary := reconcile(&rec)

	receipt.StoreName = rec.StoreName
	receipt.BillNumber = rec.BillNumber
	receipt.ReceiptDate = rec.Date
	receipt.TotalAmount = rec.TotalAmount
	receipt.ItemsTotal = summary.ItemsTotal
	receipt.RawText = text
	receipt.ScanStatus = domain.ScanStatusCompleted
	receipt.ScanError = ""
	if summary.Suspect {
		receipt.ScanError = fmt.Sprintf(
			"items total %.2f differs from declared total %.2f; review suggested",
			summary.ItemsTotal, summary.DeclaredTotal)
	}

	items := make([]domain.ReceiptItem, 0, len(rec.Items))
	for _, it := range rec.Items {
		items = append(items, domain.ReceiptItem{
			ItemName:   it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.Total,
		})
	}

	if err := s.receiptRepo.CompleteScan(ctx, receipt, items); err != nil {
		log.Printf("receiptService.ProcessReceipt: persist failed for %s: %v", receipt.ID, err)
		s.failScan(ctx, receipt.ID, fmt.Sprintf("saving scan result: %v", err))
		return
	}

	log.Printf("receiptService.ProcessReceipt: receipt %s scanned (%d items, declared %.2f, recognized %.2f)",
		receipt.ID, len(items), summary.DeclaredTotal, summary.ItemsTotal)
}

func (s *receiptService) failScan(ctx context.Context, receiptID uuid.UUID, reason string) {
	log.Printf("receiptService: scan failed for %s: %s", receiptID, reason)
	if err := s.receiptRepo.UpdateScanStatus(ctx, receiptID, domain.ScanStatusFailed, reason); err != nil {
		log.Printf("receiptService: failed to mark %s as failed: %v", receiptID, err)
	}
}

func (s *receiptService) downloadToTemp(ctx context.Context, meta *domain.FileMeta) (string, func(), error) {
	body, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		return "", nil, err
	}
	defer body.Close()

	tmp, err := os.CreateTemp("", "receipt-*."+string(meta.FileType))
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

func (s *receiptService) Create(ctx context.Context, userID uuid.UUID, input CreateReceiptInput) (*domain.Receipt, error) {
	items := make([]domain.ReceiptItem, 0, len(input.Items))
	var itemsTotal float64
	for _, it := range input.Items {
		itemsTotal += it.TotalPrice
		items = append(items, domain.ReceiptItem{
			ItemName:   it.ItemName,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}

	receipt := &domain.Receipt{
		UserID:      userID,
		StoreName:   input.StoreName,
		BillNumber:  input.BillNumber,
		ReceiptDate: input.Date,
		TotalAmount: input.TotalAmount,
		ItemsTotal:  itemsTotal,
		ScanStatus:  domain.ScanStatusCompleted,
	}
	if err := s.receiptRepo.Create(ctx, receipt, items); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) GetByID(ctx context.Context, userID, receiptID uuid.UUID) (*domain.Receipt, error) {
	return s.receiptRepo.GetByID(ctx, userID, receiptID)
}

func (s *receiptService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error) {
	return s.receiptRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *receiptService) ListItems(ctx context.Context, userID, receiptID uuid.UUID) ([]domain.ReceiptItem, error) {
	return s.receiptRepo.ListItems(ctx, userID, receiptID)
}

func (s *receiptService) Delete(ctx context.Context, userID, receiptID uuid.UUID) error {
	return s.receiptRepo.Delete(ctx, userID, receiptID)
}
