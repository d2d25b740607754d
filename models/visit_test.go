package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	prices := []decimal.Decimal{d("20.00"), d("15.50")}

	subtotal, final := ComputeTotals(prices, d("5.00"))
	assert.True(t, subtotal.Equal(d("35.50")))
	assert.True(t, final.Equal(d("30.50")))
}

func TestComputeTotalsDiscountExceedingSubtotal(t *testing.T) {
	prices := []decimal.Decimal{d("20.00"), d("15.50")}

	// The final amount is deliberately not clamped at zero.
	_, final := ComputeTotals(prices, d("40.00"))
	assert.True(t, final.Equal(d("-4.50")))
}

func TestComputeTotalsNoDiscount(t *testing.T) {
	subtotal, final := ComputeTotals([]decimal.Decimal{d("25.00")}, decimal.Zero)
	assert.True(t, subtotal.Equal(d("25.00")))
	assert.True(t, final.Equal(subtotal))
}

func TestComputeTotalsPriceFormatStable(t *testing.T) {
	subtotal, _ := ComputeTotals([]decimal.Decimal{d("25.00")}, decimal.Zero)
	assert.Equal(t, "25.00", subtotal.StringFixed(2))
}
