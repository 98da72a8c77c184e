package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartpantry/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash, expectedTokenID string) error
}

// ReceiptRepository defines the contract for receipt persistence. Create
// inserts the receipt and its items in one transaction.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error
	GetByID(ctx context.Context, userID, receiptID uuid.UUID) (*domain.Receipt, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Receipt, int, error)
	ListItems(ctx context.Context, userID, receiptID uuid.UUID) ([]domain.ReceiptItem, error)
	UpdateScanStatus(ctx context.Context, receiptID uuid.UUID, status domain.ScanStatus, scanError string) error
	Delete(ctx context.Context, userID, receiptID uuid.UUID) error

	// Queue operations for the background scan worker.
	ClaimNextPending(ctx context.Context) (*domain.Receipt, error)
	CompleteScan(ctx context.Context, receipt *domain.Receipt, items []domain.ReceiptItem) error
}

// NutritionRepository defines the contract for nutrition entry persistence.
type NutritionRepository interface {
	Create(ctx context.Context, entry *domain.NutritionEntry) error
	GetByID(ctx context.Context, entryID uuid.UUID) (*domain.NutritionEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.NutritionEntry, int, error)
	ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.NutritionEntry, error)
	Update(ctx context.Context, entry *domain.NutritionEntry) error
	Delete(ctx context.Context, entryID uuid.UUID) error
}

// FileMetaRepository defines the contract for uploaded file metadata.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, userID, fileID uuid.UUID) (*domain.FileMeta, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, userID, fileID uuid.UUID) error
}

// FoodReferenceRepository defines the contract for the seeded local
// nutrition table.
type FoodReferenceRepository interface {
	Upsert(ctx context.Context, foods []domain.FoodReference) error
	SearchByName(ctx context.Context, name string) (*domain.FoodReference, error)
}
