package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	total := LineTotal(decimal.NewFromInt(15000), 2, 0)
	assert.True(t, total.Equal(decimal.NewFromInt(30000)))

	total = LineTotal(decimal.NewFromInt(15000), 3, 0)
	assert.True(t, total.Equal(decimal.NewFromInt(45000)))

	// single unit
	total = LineTotal(decimal.NewFromInt(9), 1, 0)
	assert.True(t, total.Equal(decimal.NewFromInt(9)))
}

func TestLineTotalPrecision(t *testing.T) {
	price := decimal.RequireFromString("19.99")

	total := LineTotal(price, 3, 2)
	assert.True(t, total.Equal(decimal.RequireFromString("59.97")))

	// zero-decimal currency rounds the derived total
	total = LineTotal(price, 3, 0)
	assert.True(t, total.Equal(decimal.NewFromInt(60)))
}

func TestLineTotalDegradesToZero(t *testing.T) {
	assert.True(t, LineTotal(decimal.NewFromInt(-5), 2, 0).IsZero())
	assert.True(t, LineTotal(decimal.NewFromInt(100), -1, 0).IsZero())
	assert.True(t, LineTotal(decimal.Zero, 0, 0).IsZero())
}

func TestOrderTotal(t *testing.T) {
	lines := []LineEdit{
		{TotalPrice: decimal.NewFromInt(30000)},
		{TotalPrice: decimal.NewFromInt(12500)},
	}
	assert.True(t, OrderTotal(lines, 0).Equal(decimal.NewFromInt(42500)))
}

func TestOrderTotalEmpty(t *testing.T) {
	assert.True(t, OrderTotal(nil, 0).IsZero())
	assert.True(t, OrderTotal([]LineEdit{}, 0).IsZero())
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("15000").Equal(decimal.NewFromInt(15000)))
	assert.True(t, ParseAmount("15,000").Equal(decimal.NewFromInt(15000)))
	assert.True(t, ParseAmount("29.99").Equal(decimal.RequireFromString("29.99")))

	// malformed input degrades to zero, never errors
	assert.True(t, ParseAmount("").IsZero())
	assert.True(t, ParseAmount("   ").IsZero())
	assert.True(t, ParseAmount("abc").IsZero())
}
