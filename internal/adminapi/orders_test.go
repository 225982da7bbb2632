package adminapi

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPayloadToInput(t *testing.T) {
	p := orderPayload{
		CustomerID: 1001,
		OrderDate:  "2024-06-01",
		Status:     "Paid",
		TotalPrice: "30,000",
		Lines: []orderLinePayload{
			{ProductID: 2001, Price: "15000", Quantity: 2, TotalPrice: "30000"},
		},
	}

	in, err := p.toInput()
	require.NoError(t, err)
	assert.Equal(t, int64(1001), in.CustomerID)
	assert.Equal(t, 2024, in.OrderDate.Year())
	assert.True(t, in.TotalPrice.Equal(decimal.NewFromInt(30000)))
	require.Len(t, in.Lines, 1)
	assert.True(t, in.Lines[0].Price.Equal(decimal.NewFromInt(15000)))
	assert.True(t, in.Lines[0].TotalPrice.Equal(decimal.NewFromInt(30000)))
}

func TestOrderPayloadLenientDate(t *testing.T) {
	for _, raw := range []string{"2024-06-01", "06/01/2024", "Jun 1, 2024", " 2024-06-01T10:30:00Z "} {
		p := orderPayload{CustomerID: 1, OrderDate: raw}
		in, err := p.toInput()
		require.NoError(t, err, raw)
		assert.Equal(t, 2024, in.OrderDate.Year(), raw)
	}

	p := orderPayload{CustomerID: 1, OrderDate: "not a date"}
	_, err := p.toInput()
	assert.Error(t, err)
}

func TestExportPageSizeFallback(t *testing.T) {
	// an unseeded setting must widen to the pagination cap, not shrink the
	// export to a single default page
	assert.Equal(t, 500, exportPageSize(0))
	assert.Equal(t, 500, exportPageSize(-1))
	assert.Equal(t, 250, exportPageSize(250))
	assert.Equal(t, 1000, exportPageSize(1000))
}
