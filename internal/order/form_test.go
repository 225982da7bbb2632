package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespoint/orderadmin/internal/domain"
)

func testProduct(id int64, price int64) *domain.Product {
	return &domain.Product{ID: id, Name: "widget", Price: decimal.NewFromInt(price), IsAvailable: true}
}

func TestFormSelectProductRecomputes(t *testing.T) {
	f := NewOrderForm(0)
	i := f.AddLine() // default quantity 1

	f.SetQuantity(i, 2)
	f.SelectProduct(i, testProduct(7, 15000))

	assert.True(t, f.Lines[i].TotalPrice.Equal(decimal.NewFromInt(30000)))
	assert.True(t, f.TotalPrice.Equal(decimal.NewFromInt(30000)))
}

func TestFormQuantityChangeRecomputes(t *testing.T) {
	f := NewOrderForm(0)
	i := f.AddLine()
	f.SelectProduct(i, testProduct(7, 15000))
	f.SetQuantity(i, 2)
	require.True(t, f.TotalPrice.Equal(decimal.NewFromInt(30000)))

	// editing the quantity re-derives the line total first, then the order
	f.SetQuantity(i, 3)
	assert.True(t, f.Lines[i].TotalPrice.Equal(decimal.NewFromInt(45000)))
	assert.True(t, f.TotalPrice.Equal(decimal.NewFromInt(45000)))
}

func TestFormDeselectResetsPrice(t *testing.T) {
	f := NewOrderForm(0)
	i := f.AddLine()
	f.SelectProduct(i, testProduct(7, 15000))
	f.SelectProduct(i, nil)

	assert.True(t, f.Lines[i].Price.IsZero())
	assert.True(t, f.Lines[i].TotalPrice.IsZero())
	assert.True(t, f.TotalPrice.IsZero())
}

func TestFormAddRemoveLineRecomputes(t *testing.T) {
	f := NewOrderForm(0)

	a := f.AddLine()
	f.SelectProduct(a, testProduct(1, 100))
	b := f.AddLine()
	f.SelectProduct(b, testProduct(2, 250))
	f.SetQuantity(b, 2)

	assert.True(t, f.TotalPrice.Equal(decimal.NewFromInt(600)))

	f.RemoveLine(a)
	assert.Len(t, f.Lines, 1)
	assert.True(t, f.TotalPrice.Equal(decimal.NewFromInt(500)))

	f.RemoveLine(0)
	assert.Empty(t, f.Lines)
	assert.True(t, f.TotalPrice.IsZero())
}

func TestFormHasProduct(t *testing.T) {
	f := NewOrderForm(0)
	i := f.AddLine()
	f.SelectProduct(i, testProduct(7, 15000))

	assert.True(t, f.HasProduct(7))
	assert.False(t, f.HasProduct(8))
}

func TestFormFromOrderPreFill(t *testing.T) {
	o := &domain.Order{
		ID:         1,
		CustomerID: 42,
		OrderDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:     domain.OrderStatusPaid,
		TotalPrice: decimal.NewFromInt(30000),
		Items: []domain.OrderProduct{
			{OrderID: 1, ProductID: 7, Quantity: 2, Price: decimal.NewFromInt(15000), TotalPrice: decimal.NewFromInt(30000)},
		},
	}

	f := FormFromOrder(o, 0)
	require.Len(t, f.Lines, 1)
	assert.Equal(t, int64(42), f.CustomerID)
	assert.Equal(t, domain.OrderStatusPaid, f.Status)
	assert.Equal(t, int64(7), f.Lines[0].ProductID)
	assert.Equal(t, int64(2), f.Lines[0].Quantity)
	assert.True(t, f.Lines[0].Price.Equal(decimal.NewFromInt(15000)))
	assert.True(t, f.Lines[0].TotalPrice.Equal(decimal.NewFromInt(30000)))
	assert.True(t, f.TotalPrice.Equal(decimal.NewFromInt(30000)))
}

func TestFormIgnoresOutOfRangeIndex(t *testing.T) {
	f := NewOrderForm(0)
	f.SetQuantity(3, 2)
	f.SelectProduct(-1, testProduct(1, 100))
	f.RemoveLine(0)
	assert.Empty(t, f.Lines)
	assert.True(t, f.TotalPrice.IsZero())
}
