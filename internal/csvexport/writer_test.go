package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 8)
	assert.Equal(t, "Store Name", row[0])
	assert.Equal(t, "Bill Number", row[1])
	assert.Equal(t, "Created At", row[7])
}

func TestWriteReceipts(t *testing.T) {
	createdAt := time.Date(2025, 1, 14, 8, 0, 0, 0, time.UTC)
	receipt := domain.Receipt{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		StoreName:   "FRESH MART",
		BillNumber:  "10234",
		ReceiptDate: "12/05/2024",
		TotalAmount: 110,
		ItemsTotal:  100,
		ScanStatus:  domain.ScanStatusCompleted,
		ScanError:   "items total 100.00 differs from declared total 110.00; review suggested",
		CreatedAt:   createdAt,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteReceipts([]domain.Receipt{receipt}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 8)
	assert.Equal(t, "FRESH MART", row[0])
	assert.Equal(t, "10234", row[1])
	assert.Equal(t, "12/05/2024", row[2])
	assert.Equal(t, "110.00", row[3])
	assert.Equal(t, "100.00", row[4])
	assert.Equal(t, "completed", row[5])
	assert.Contains(t, row[6], "review suggested")
	assert.Equal(t, "2025-01-14T08:00:00Z", row[7])
}

func TestWriteReceipts_MonetaryFormatting(t *testing.T) {
	receipt := domain.Receipt{
		StoreName:   "Money Test",
		TotalAmount: 99.999, // rounds to 2 decimal places
		ItemsTotal:  0.1,    // trailing zero
		ScanStatus:  domain.ScanStatusCompleted,
		CreatedAt:   time.Now(),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteReceipts([]domain.Receipt{receipt}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "100.00", row[3])
	assert.Equal(t, "0.10", row[4])
}

func TestWriteReceipts_EmptyFields(t *testing.T) {
	receipt := domain.Receipt{
		ScanStatus: domain.ScanStatusPending,
		CreatedAt:  time.Date(2025, 1, 14, 8, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteReceipts([]domain.Receipt{receipt}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Empty(t, row[0])
	assert.Empty(t, row[1])
	assert.Empty(t, row[2])
	assert.Equal(t, "0.00", row[3])
	assert.Equal(t, "pending", row[5])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "May Grocery Receipts", "May_Grocery_Receipts"},
		{"special chars", "FY 2024-25 / Q3 (Oct–Dec)", "FY_2024-25_Q3_Oct_Dec"},
		{"unicode", "किराना Receipts", "Receipts"},
		{"hyphens and underscores preserved", "my-receipts_2025", "my-receipts_2025"},
		{"consecutive underscores collapsed", "test___export", "test_export"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{
			"long name truncated",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-extra",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrs",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	filename := BuildFilename("May Grocery Receipts")
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "May_Grocery_Receipts_"+today+".csv", filename)
}
