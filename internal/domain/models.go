package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account.
type User struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	Email                string    `db:"email" json:"email"`
	PasswordHash         string    `db:"password_hash" json:"-"`
	FullName             string    `db:"full_name" json:"full_name"`
	IsActive             bool      `db:"is_active" json:"is_active"`
	PasswordResetTokenID *string   `db:"password_reset_token_id" json:"-"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// Receipt represents one scanned or manually entered grocery receipt.
// ReceiptDate is kept verbatim as read off the paper; OCR dates are too
// unreliable to parse into a calendar type.
type Receipt struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	FileID      *uuid.UUID `db:"file_id" json:"file_id,omitempty"`
	StoreName   string     `db:"store_name" json:"store_name"`
	BillNumber  string     `db:"bill_number" json:"bill_number"`
	ReceiptDate string     `db:"receipt_date" json:"receipt_date"`
	TotalAmount float64    `db:"total_amount" json:"total_amount"`
	ItemsTotal  float64    `db:"items_total" json:"items_total"`
	ScanStatus  ScanStatus `db:"scan_status" json:"scan_status"`
	ScanError   string     `db:"scan_error" json:"scan_error,omitempty"`
	RawText     string     `db:"raw_text" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ReceiptItem represents one purchased line on a receipt.
type ReceiptItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ReceiptID  uuid.UUID `db:"receipt_id" json:"receipt_id"`
	ItemName   string    `db:"item_name" json:"item_name"`
	Quantity   float64   `db:"quantity" json:"quantity"`
	UnitPrice  float64   `db:"unit_price" json:"unit_price"`
	TotalPrice float64   `db:"total_price" json:"total_price"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// NutritionEntry represents one logged food item with its resolved nutrients.
// SourceJSON preserves the raw external API payload for later re-derivation.
type NutritionEntry struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     uuid.UUID       `db:"user_id" json:"user_id"`
	ItemName   string          `db:"item_name" json:"item_name"`
	Quantity   float64         `db:"quantity" json:"quantity"`
	Unit       string          `db:"unit" json:"unit"`
	Calories   float64         `db:"calories" json:"calories"`
	Protein    float64         `db:"protein" json:"protein"`
	Fat        float64         `db:"fat" json:"fat"`
	Carbs      float64         `db:"carbs" json:"carbs"`
	Fiber      float64         `db:"fiber" json:"fiber"`
	Sugar      float64         `db:"sugar" json:"sugar"`
	SourceID   *int64          `db:"source_id" json:"source_id,omitempty"`
	SourceJSON json.RawMessage `db:"source_json" json:"-"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded receipt image.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// FoodReference is a locally seeded nutrition row (per 100g) used as a
// fallback when the external nutrition API is unavailable or unconfigured.
type FoodReference struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Calories  float64   `db:"calories" json:"calories"`
	Protein   float64   `db:"protein" json:"protein"`
	Fat       float64   `db:"fat" json:"fat"`
	Carbs     float64   `db:"carbs" json:"carbs"`
	Fiber     float64   `db:"fiber" json:"fiber"`
	Sugar     float64   `db:"sugar" json:"sugar"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ScanSummary reconciles the sum of recognized line items against the
// declared receipt total.
type ScanSummary struct {
	ItemsTotal    float64 `json:"items_total"`
	DeclaredTotal float64 `json:"declared_total"`
	Difference    float64 `json:"difference"`
	Suspect       bool    `json:"suspect"`
}
