package render

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatPriceWithPrecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v         string
		precision int
		want      string
	}{
		{"65123.4", 2, "65,123.40"},
		{"65000", 0, "65,000"},
		{"0.158", 3, "0.158"},
		{"0.158", 5, "0.15800"},
		{"1234567.891", 2, "1,234,567.89"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(dec(tt.v), tt.precision), "%s @ %d", tt.v, tt.precision)
	}
}

func TestFormatPriceFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    string
		want string
	}{
		{"0", "0"},
		{"65000", "65,000.00"},
		{"1000", "1,000.00"},
		{"3.14159", "3.1416"},
		{"2.5000", "2.5"},
		{"1", "1"},
		{"0.158", "0.158"},
		{"0.00000123", "0.00000123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(dec(tt.v), -1), tt.v)
	}
}

func TestSignedFixed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+38.50", signedFixed(dec("38.5"), 2))
	assert.Equal(t, "-12.50", signedFixed(dec("-12.5"), 2))
	assert.Equal(t, "+0.00", signedFixed(decimal.Zero, 2))
}

func TestTrimZeros(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2.5", trimZeros("2.5000"))
	assert.Equal(t, "3", trimZeros("3.0000"))
	assert.Equal(t, "0.158", trimZeros("0.15800000"))
}
