package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func totalFromLines(lines ...string) float64 {
	rec := ReceiptRecord{Items: []LineItem{}}
	extractTotal(lines, &rec)
	return rec.TotalAmount
}

func TestExtractTotal_LabelledPatterns(t *testing.T) {
	tests := []struct {
		line string
		want float64
	}{
		{"TOTAL $57", 57},
		{"Total 628.80", 628.80},
		{"Net Amt: 661.00", 661},
		{"Grand Total: 1234.50", 1234.50},
		{"Amount: 99", 99},
		{"TOTAL: ₹450.00", 450},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, totalFromLines(tt.line), "line %q", tt.line)
	}
}

func TestExtractTotal_TailScansBackward(t *testing.T) {
	// The line nearer the end of the receipt is checked first.
	got := totalFromLines(
		"Subtotal 100.00",
		"TOTAL 120.00",
	)
	assert.Equal(t, 120.0, got)
}

func TestExtractTotal_RangeGuard(t *testing.T) {
	assert.Equal(t, 0.0, totalFromLines("TOTAL 2000000"))
	assert.Equal(t, 0.0, totalFromLines("TOTAL 0"))
}

func TestExtractTotal_OnlyTrailingWindow(t *testing.T) {
	lines := []string{"TOTAL 55.00"}
	for i := 0; i < 20; i++ {
		lines = append(lines, "filler line")
	}
	assert.Equal(t, 0.0, totalFromLines(lines...))
}

func TestTryExtractTotal_FirstWriteWins(t *testing.T) {
	rec := ReceiptRecord{}
	assert.True(t, tryExtractTotal("Net Amt: 661.00", &rec))
	assert.True(t, tryExtractTotal("TOTAL 999.00", &rec))
	assert.Equal(t, 661.0, rec.TotalAmount)
}

func TestTryExtractTotal_NoMatch(t *testing.T) {
	rec := ReceiptRecord{}
	assert.False(t, tryExtractTotal("Bread 2 10.00", &rec))
	assert.Equal(t, 0.0, rec.TotalAmount)
}
