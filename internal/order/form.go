package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salespoint/orderadmin/internal/domain"
)

// LineEdit is the editable line-item record exchanged with the presentation
// layer: the same shape is used for form pre-fill and for submit.
type LineEdit struct {
	ProductID  int64           `json:"product_id,string"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderForm mirrors the editable order state. Every edit event recomputes
// the affected line total first and the order total second, so the derived
// fields are never stale. The form itself has no store access; product
// lookups are supplied by the caller.
type OrderForm struct {
	CustomerID int64
	OrderDate  time.Time
	Status     domain.OrderStatus
	TotalPrice decimal.Decimal
	Lines      []LineEdit

	precision int32
}

func NewOrderForm(precision int32) *OrderForm {
	return &OrderForm{
		OrderDate: time.Now(),
		Status:    domain.OrderStatusPending,
		precision: precision,
	}
}

// FormFromOrder reshapes a stored order into an editable form so the
// presentation layer can re-populate the line list.
func FormFromOrder(o *domain.Order, precision int32) *OrderForm {
	f := &OrderForm{
		CustomerID: o.CustomerID,
		OrderDate:  o.OrderDate,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		precision:  precision,
	}
	for _, it := range o.Items {
		f.Lines = append(f.Lines, LineEdit{
			ProductID:  it.ProductID,
			Price:      it.Price,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		})
	}
	return f
}

func (f *OrderForm) recomputeLine(i int) {
	f.Lines[i].TotalPrice = LineTotal(f.Lines[i].Price, f.Lines[i].Quantity, f.precision)
}

func (f *OrderForm) recomputeOrder() {
	f.TotalPrice = OrderTotal(f.Lines, f.precision)
}

// SelectProduct snapshots the unit price of the selected product onto line i
// and re-derives the line and order totals. A nil product resets the price
// to zero, matching the original edit surface.
func (f *OrderForm) SelectProduct(i int, p *domain.Product) {
	if i < 0 || i >= len(f.Lines) {
		return
	}
	if p != nil {
		f.Lines[i].ProductID = p.ID
		f.Lines[i].Price = p.Price
	} else {
		f.Lines[i].ProductID = 0
		f.Lines[i].Price = decimal.Zero
	}
	f.recomputeLine(i)
	f.recomputeOrder()
}

// SetQuantity updates line i's quantity and re-derives the line and order
// totals.
func (f *OrderForm) SetQuantity(i int, quantity int64) {
	if i < 0 || i >= len(f.Lines) {
		return
	}
	f.Lines[i].Quantity = quantity
	f.recomputeLine(i)
	f.recomputeOrder()
}

// AddLine appends an empty line with the default quantity of 1 and returns
// its index.
func (f *OrderForm) AddLine() int {
	f.Lines = append(f.Lines, LineEdit{Quantity: 1})
	i := len(f.Lines) - 1
	f.recomputeLine(i)
	f.recomputeOrder()
	return i
}

// RemoveLine drops line i and re-derives the order total.
func (f *OrderForm) RemoveLine(i int) {
	if i < 0 || i >= len(f.Lines) {
		return
	}
	f.Lines = append(f.Lines[:i], f.Lines[i+1:]...)
	f.recomputeOrder()
}

// HasProduct reports whether a product is already selected on another line.
// The edit surface uses it to disable already-selected options, keeping one
// line per product within an order.
func (f *OrderForm) HasProduct(productID int64) bool {
	for _, ln := range f.Lines {
		if ln.ProductID == productID {
			return true
		}
	}
	return false
}
