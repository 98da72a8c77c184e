package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\n"} {
		rec := Parse(in)
		assert.Empty(t, rec.StoreName)
		assert.Empty(t, rec.BillNumber)
		assert.Empty(t, rec.Date)
		assert.Equal(t, 0.0, rec.TotalAmount)
		assert.Empty(t, rec.Items)
		assert.NotNil(t, rec.Items)
	}
}

func TestParse_GarbledInputNeverFails(t *testing.T) {
	rec := Parse("@@##\n~~~~\n....\n!!")
	assert.Empty(t, rec.Items)
	assert.Equal(t, 0.0, rec.TotalAmount)
}

func TestParse_EndToEnd(t *testing.T) {
	text := "FRESH MART\n" +
		"Bill No: 10234\n" +
		"Date: 12/05/2024\n" +
		"Bread 2 10.00\n" +
		"Milk 1.5 90.00\n" +
		"TOTAL: 110.00\n"

	rec := Parse(text)

	assert.Equal(t, "FRESH MART", rec.StoreName)
	assert.Equal(t, "10234", rec.BillNumber)
	assert.Equal(t, "12/05/2024", rec.Date)
	assert.Equal(t, 110.0, rec.TotalAmount)

	require.Len(t, rec.Items, 2)
	assert.Equal(t, LineItem{Name: "Bread", Quantity: 2, UnitPrice: 5, Total: 10}, rec.Items[0])
	assert.Equal(t, LineItem{Name: "Milk", Quantity: 1.5, UnitPrice: 60, Total: 90}, rec.Items[1])

	assert.Equal(t, 100.0, rec.ItemsTotal())
}

func TestParse_HSNReceipt(t *testing.T) {
	text := "SRI VENKATA STORES\n" +
		"TAX INVOICE\n" +
		"HSN Item Details\n" +
		"1701 SUGAR\n" +
		"1 2.000 0.00 45.00 90.00\n" +
		"Net Amt: 90.00\n"

	rec := Parse(text)

	assert.Equal(t, "SRI VENKATA STORES", rec.StoreName)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "SUGAR", rec.Items[0].Name)
	assert.Equal(t, 2.0, rec.Items[0].Quantity)
	assert.Equal(t, 45.0, rec.Items[0].UnitPrice)
	assert.Equal(t, 90.0, rec.Items[0].Total)
	assert.Equal(t, 90.0, rec.TotalAmount)
}

func TestParse_CurrencyGlyphNormalizedBeforeMatching(t *testing.T) {
	rec := Parse("CORNER SHOP\nSoap 1 S45.00\nTOTAL S45.00\n")
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "Soap", rec.Items[0].Name)
	assert.Equal(t, 45.0, rec.Items[0].Total)
	assert.Equal(t, 45.0, rec.TotalAmount)
}

func TestParse_SummaryTotalBeatsTailScan(t *testing.T) {
	// The recognizer forwards the "Net Amt" line first; the tail scan must
	// not overwrite it with the later refund-looking amount.
	rec := Parse("STORE ONE\nBread 2 10.00\nNet Amt: 10.00\nAmount: 500.00\n")
	assert.Equal(t, 10.0, rec.TotalAmount)
}

func TestParse_TotalAbsentStaysZero(t *testing.T) {
	rec := Parse("STORE TWO\nBread 2 10.00\n")
	assert.Equal(t, 0.0, rec.TotalAmount)
	assert.Len(t, rec.Items, 1)
}
