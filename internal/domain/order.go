package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusRejected  OrderStatus = "Rejected"
)

// OrderStatuses lists every valid status. There is no enforced transition
// graph: any status may be set to any other through an update.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusDelivered,
	OrderStatusRejected,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is the aggregate header. TotalPrice is derived from the line totals
// and is never independently authored.
type Order struct {
	ID         int64           `json:"id,string" form:"id"`
	CustomerID int64           `gorm:"index;not null" json:"customer_id,string" form:"customer_id"`
	Customer   *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OrderDate  time.Time       `gorm:"index;not null" json:"order_date" form:"order_date"`
	Status     OrderStatus     `gorm:"index;size:20;default:'Pending'" json:"status" form:"status"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"`
	Items      []OrderProduct  `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderProduct is the order/product junction row carrying the pivot
// attributes. Price is the unit price snapshot taken when the line was
// authored, decoupled from later catalog price changes. Rows are hard
// deleted when a sync removes the line.
type OrderProduct struct {
	OrderID    int64           `gorm:"primaryKey;autoIncrement:false" json:"order_id,string"`
	ProductID  int64           `gorm:"primaryKey;autoIncrement:false" json:"product_id,string"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (OrderProduct) TableName() string {
	return "order_products"
}
