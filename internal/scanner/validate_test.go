package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidItem_ExclusionVocabulary(t *testing.T) {
	for _, name := range []string{
		"TOTAL", "Subtotal", "tax paid", "Cashier 4", "CGST",
		"User Name", "Thank you", "Bill No", "rupees only",
	} {
		assert.False(t, isValidItem(name), "name %q", name)
	}
}

func TestIsValidItem_ShapeChecks(t *testing.T) {
	assert.False(t, isValidItem("a"), "too short")
	assert.False(t, isValidItem("1234"), "no letter")
	assert.False(t, isValidItem("a1234567890"), "alpha ratio below threshold")
	assert.False(t, isValidItem("ab!@#$%^&*()"), "symbol heavy")
}

func TestIsValidItem_AcceptsProducts(t *testing.T) {
	for _, name := range []string{
		"Bread", "SUGAR", "KLF COCONUT OIL 450ML", "LUX(big)", "Moong Dal",
	} {
		assert.True(t, isValidItem(name), "name %q", name)
	}
}

func TestCleanItemName(t *testing.T) {
	assert.Equal(t, "LUX(big)", cleanItemName("LUX(big)***"))
	assert.Equal(t, "Moong Dal", cleanItemName("  Moong   Dal "))
	assert.Equal(t, "Bread", cleanItemName("Bread"))
}
