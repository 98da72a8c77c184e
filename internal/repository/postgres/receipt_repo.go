package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"smartpantry/internal/domain"
	"smartpantry/internal/port"
)

type receiptRepo struct {
	db *sqlx.DB
}

// NewReceiptRepo creates a new PostgreSQL-backed ReceiptRepository.
func NewReceiptRepo(db *sqlx.DB) port.ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Create(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	now := time.Now().UTC()
	receipt.CreatedAt = now
	receipt.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("receiptRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts
			(id, user_id, file_id, store_name, bill_number, receipt_date, total_amount,
			 items_total, scan_status, scan_error, raw_text, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		receipt.ID, receipt.UserID, receipt.FileID, receipt.StoreName, receipt.BillNumber,
		receipt.ReceiptDate, receipt.TotalAmount, receipt.ItemsTotal, receipt.ScanStatus,
		receipt.ScanError, receipt.RawText, receipt.CreatedAt, receipt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("receiptRepo.Create receipt: %w", err)
	}

	if err := insertItemsTx(ctx, tx, receipt.ID, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("receiptRepo.Create commit: %w", err)
	}
	return nil
}

func insertItemsTx(ctx context.Context, tx *sqlx.Tx, receiptID uuid.UUID, items []domain.ReceiptItem) error {
	for i := range items {
		items[i].ID = uuid.New()
		items[i].ReceiptID = receiptID
		items[i].CreatedAt = time.Now().UTC()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO receipt_items
				(id, receipt_id, item_name, quantity, unit_price, total_price, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			items[i].ID, items[i].ReceiptID, items[i].ItemName,
			items[i].Quantity, items[i].UnitPrice, items[i].TotalPrice, items[i].CreatedAt)
		if err != nil {
			return fmt.Errorf("receiptRepo insert item: %w", err)
		}
	}
	return nil
}

func (r *receiptRepo) GetByID(ctx context.Context, userID, receiptID uuid.UUID) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := r.db.GetContext(ctx, &receipt,
		"SELECT * FROM receipts WHERE id = $1 AND user_id = $2", receiptID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("receiptRepo.GetByID: %w", err)
	}
	return &receipt, nil
}

func (r *receiptRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM receipts WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("receiptRepo.ListByUser count: %w", err)
	}

	var receipts []domain.Receipt
	err = r.db.SelectContext(ctx, &receipts,
		"SELECT * FROM receipts WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("receiptRepo.ListByUser: %w", err)
	}
	return receipts, total, nil
}

func (r *receiptRepo) ListItems(ctx context.Context, userID, receiptID uuid.UUID) ([]domain.ReceiptItem, error) {
	// Ownership is checked through the receipt row itself.
	if _, err := r.GetByID(ctx, userID, receiptID); err != nil {
		return nil, err
	}

	var items []domain.ReceiptItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM receipt_items WHERE receipt_id = $1 ORDER BY created_at, id", receiptID)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.ListItems: %w", err)
	}
	return items, nil
}

func (r *receiptRepo) UpdateScanStatus(ctx context.Context, receiptID uuid.UUID, status domain.ScanStatus, scanError string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE receipts SET scan_status = $1, scan_error = $2, updated_at = NOW() WHERE id = $3",
		status, scanError, receiptID)
	if err != nil {
		return fmt.Errorf("receiptRepo.UpdateScanStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *receiptRepo) Delete(ctx context.Context, userID, receiptID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM receipts WHERE id = $1 AND user_id = $2", receiptID, userID)
	if err != nil {
		return fmt.Errorf("receiptRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClaimNextPending atomically marks the oldest pending receipt as processing
// and returns it. SKIP LOCKED keeps concurrent workers from claiming the
// same row.
func (r *receiptRepo) ClaimNextPending(ctx context.Context) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := r.db.GetContext(ctx, &receipt, `
		UPDATE receipts SET scan_status = $1, updated_at = NOW()
		WHERE id = (
			SELECT id FROM receipts
			WHERE scan_status = $2
			ORDER BY created_at
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING *`,
		domain.ScanStatusProcessing, domain.ScanStatusPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("receiptRepo.ClaimNextPending: %w", err)
	}
	return &receipt, nil
}

// CompleteScan writes the extracted fields and replaces any previous items
// for the receipt in one transaction.
func (r *receiptRepo) CompleteScan(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("receiptRepo.CompleteScan begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`UPDATE receipts SET
			store_name = $1, bill_number = $2, receipt_date = $3, total_amount = $4,
			items_total = $5, scan_status = $6, scan_error = $7, raw_text = $8, updated_at = NOW()
		 WHERE id = $9`,
		receipt.StoreName, receipt.BillNumber, receipt.ReceiptDate, receipt.TotalAmount,
		receipt.ItemsTotal, receipt.ScanStatus, receipt.ScanError, receipt.RawText, receipt.ID)
	if err != nil {
		return fmt.Errorf("receiptRepo.CompleteScan update: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM receipt_items WHERE receipt_id = $1", receipt.ID)
	if err != nil {
		return fmt.Errorf("receiptRepo.CompleteScan clear items: %w", err)
	}

	if err := insertItemsTx(ctx, tx, receipt.ID, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("receiptRepo.CompleteScan commit: %w", err)
	}
	return nil
}
