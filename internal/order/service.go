package order

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/salespoint/orderadmin/internal/domain"
	"github.com/salespoint/orderadmin/pkg/common"
)

// PrecisionFunc supplies the currency precision at call time so a settings
// change takes effect without restarting.
type PrecisionFunc func() int32

// OrderInput is the submit record for create and update: the header fields
// plus the full target set of lines. Totals arrive precomputed by the edit
// surface and are carried verbatim; the service validates but does not
// re-derive them.
type OrderInput struct {
	CustomerID int64
	OrderDate  time.Time
	Status     domain.OrderStatus
	TotalPrice decimal.Decimal
	Lines      []LineEdit
}

// ListOrdersQuery carries the list filters of the back-office table: a
// status tab, a customer name search and pagination/sorting.
type ListOrdersQuery struct {
	Status   domain.OrderStatus
	Query    string
	Page     int
	PageSize int
	Sort     string
	Order    string
}

// OrderService materializes and mutates the order aggregate atomically. The
// store transaction is the only concurrency primitive: concurrent updates of
// the same order are serialized by row locking and the last commit wins.
type OrderService struct {
	db        *gorm.DB
	precision PrecisionFunc
}

func NewOrderService(db *gorm.DB, precision PrecisionFunc) *OrderService {
	if precision == nil {
		precision = func() int32 { return DefaultCurrencyPrecision }
	}
	return &OrderService{db: db, precision: precision}
}

// validate applies the persistence-time checks before any store mutation.
func validateInput(in *OrderInput) error {
	if in.CustomerID == 0 {
		return &ValidationError{Field: "customer_id", Reason: "is required"}
	}
	if in.OrderDate.IsZero() {
		return &ValidationError{Field: "order_date", Reason: "is required"}
	}
	if in.Status != "" && !in.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "is not a valid status"}
	}
	seen := make(map[int64]bool, len(in.Lines))
	for _, ln := range in.Lines {
		if ln.ProductID == 0 {
			return &ValidationError{Field: "product_id", Reason: "is required"}
		}
		if ln.Quantity < 1 {
			return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
		}
		if ln.Price.IsNegative() {
			return &ValidationError{Field: "price", Reason: "must not be negative"}
		}
		if seen[ln.ProductID] {
			return &ValidationError{Field: "product_id", Reason: "appears more than once"}
		}
		seen[ln.ProductID] = true
	}
	return nil
}

// Create inserts the order header and one pivot row per line within a single
// transaction. Line prices and totals are carried verbatim; the header total
// is the sum of the supplied line totals. A failing line insert rolls back
// the whole aggregate.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.OrderStatusPending
	}

	o := domain.Order{
		ID:         common.UUIDint64(),
		CustomerID: in.CustomerID,
		OrderDate:  in.OrderDate,
		Status:     status,
		TotalPrice: OrderTotal(in.Lines, s.precision()),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Customer").Create(&o).Error; err != nil {
			return err
		}
		for _, ln := range in.Lines {
			row := domain.OrderProduct{
				OrderID:    o.ID,
				ProductID:  ln.ProductID,
				Quantity:   ln.Quantity,
				Price:      ln.Price,
				TotalPrice: ln.TotalPrice,
			}
			if err := tx.Omit("Product").Create(&row).Error; err != nil {
				return err
			}
			o.Items = append(o.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr("create order", "customer or product reference", err)
	}
	return &o, nil
}

// Update overwrites the header's mutable fields with the supplied values and
// reconciles the pivot set against the incoming lines keyed by product id,
// all within a single transaction. The supplied total_price is accepted as
// is; it was derived by the edit surface.
func (s *OrderService) Update(ctx context.Context, id int64, in OrderInput) (*domain.Order, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Order
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"customer_id": in.CustomerID,
			"order_date":  in.OrderDate,
			"status":      string(in.Status),
			"total_price": in.TotalPrice,
			"updated_at":  time.Now(),
		}
		if in.Status == "" {
			updates["status"] = string(existing.Status)
		}
		if err := tx.Model(&domain.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		var current []domain.OrderProduct
		if err := tx.Where("order_id = ?", id).Find(&current).Error; err != nil {
			return err
		}

		inserts, changes, removals := diffLines(id, current, in.Lines)
		for i := range inserts {
			if err := tx.Omit("Product").Create(&inserts[i]).Error; err != nil {
				return err
			}
		}
		for i := range changes {
			err := tx.Model(&domain.OrderProduct{}).
				Where("order_id = ? AND product_id = ?", id, changes[i].ProductID).
				Updates(map[string]interface{}{
					"quantity":    changes[i].Quantity,
					"price":       changes[i].Price,
					"total_price": changes[i].TotalPrice,
					"updated_at":  time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}
		if len(removals) > 0 {
			err := tx.Where("order_id = ? AND product_id IN ?", id, removals).
				Delete(&domain.OrderProduct{}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr("update order", "customer or product reference", err)
	}
	return s.Get(ctx, id)
}

// diffLines computes the replace-by-key reconciliation of the pivot set:
// incoming lines split into inserts and attribute changes, and product ids
// absent from the incoming set become removals.
func diffLines(orderID int64, current []domain.OrderProduct, incoming []LineEdit) (inserts, changes []domain.OrderProduct, removals []int64) {
	existing := make(map[int64]bool, len(current))
	for _, row := range current {
		existing[row.ProductID] = true
	}
	wanted := make(map[int64]bool, len(incoming))
	for _, ln := range incoming {
		wanted[ln.ProductID] = true
		row := domain.OrderProduct{
			OrderID:    orderID,
			ProductID:  ln.ProductID,
			Quantity:   ln.Quantity,
			Price:      ln.Price,
			TotalPrice: ln.TotalPrice,
		}
		if existing[ln.ProductID] {
			changes = append(changes, row)
		} else {
			inserts = append(inserts, row)
		}
	}
	for _, row := range current {
		if !wanted[row.ProductID] {
			removals = append(removals, row.ProductID)
		}
	}
	return inserts, changes, removals
}

// Get loads the aggregate with its line items and customer.
func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// LineEdits reshapes a stored order's items into edit records for form
// pre-fill.
func (s *OrderService) LineEdits(o *domain.Order) []LineEdit {
	return FormFromOrder(o, s.precision()).Lines
}

var orderSortColumns = map[string]string{
	"id":          "orders.id",
	"order_date":  "orders.order_date",
	"total_price": "orders.total_price",
	"created_at":  "orders.created_at",
}

// List returns one page of orders matching the status tab and search filter.
func (s *OrderService) List(ctx context.Context, q ListOrdersQuery) ([]domain.Order, int64, error) {
	db := s.db.WithContext(ctx).Model(&domain.Order{})

	if q.Status != "" {
		db = db.Where("orders.status = ?", q.Status)
	}
	if search := strings.TrimSpace(q.Query); search != "" {
		db = db.Joins("JOIN customers ON customers.id = orders.customer_id")
		if strings.EqualFold(s.db.Name(), "postgres") {
			db = db.Where("customers.name ILIKE ?", "%"+search+"%")
		} else {
			db = db.Where("LOWER(customers.name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortCol, ok := orderSortColumns[q.Sort]
	if !ok {
		sortCol = "orders.id"
	}
	sortOrder := strings.ToUpper(q.Order)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var rows []domain.Order
	err := db.Preload("Items").Preload("Customer").
		Order(sortCol + " " + sortOrder).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, total, err
}

// Delete soft-deletes the order header. Pivot rows are left in place for
// history; they are hard-removed only by a later sync.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.Order{}, id)
	if res.Error != nil {
		return wrapStoreErr("delete order", "order", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
