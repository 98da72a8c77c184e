package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_BrandAndQuantity(t *testing.T) {
	p := Normalize("Amul Fresh Milk 500ml")

	assert.Equal(t, "Amul", p.Brand)
	assert.Equal(t, "500ml", p.Quantity)
	assert.Equal(t, "milk", p.BaseName)
	assert.Equal(t, "Amul Fresh Milk 500ml", p.OriginalName)
}

func TestNormalize_BrandAliases(t *testing.T) {
	tests := []struct {
		in    string
		brand string
	}{
		{"Nestlé Everyday Dairy Whitener", "Nestle"},
		{"Maggi 2-Minute Noodles 70g", "Nestle"},
		{"Britania Marie Gold", "Britannia"},
		{"Ashirvad Atta 5kg", "Aashirvaad"},
		{"Unknown Brand Biscuits", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.brand, Normalize(tt.in).Brand, tt.in)
	}
}

func TestNormalize_QuantityStandardization(t *testing.T) {
	tests := []struct {
		in       string
		quantity string
	}{
		{"Aashirvaad Atta 5kg", "5000g"},
		{"Tata Salt 1 kg", "1000g"},
		{"Sugar 500g", "500g"},
		{"Cooking Oil 1l", "1000ml"},
		{"Milk 500 ml", "500ml"},
		{"Eggs 12 pcs", "12pieces"},
		{"Plain Biscuits", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.quantity, Normalize(tt.in).Quantity, tt.in)
	}
}

func TestNormalize_StripsFillerWords(t *testing.T) {
	p := Normalize("Premium Pure Honey 250g")
	assert.Equal(t, "honey", p.BaseName)
}

func TestRelevance(t *testing.T) {
	// Exact substring wins outright
	assert.Equal(t, 100, Relevance("Amul Taaza Toned Milk 500ml", "milk"))

	// Word overlap, 20 per common word
	assert.Equal(t, 40, Relevance("brown bread whole wheat", "bread wheat"))

	// Partial word containment only
	assert.Equal(t, 30, Relevance("breadsticks italian", "bread sticks"))

	// Nothing in common
	assert.Equal(t, 10, Relevance("dish soap", "milk"))
}
