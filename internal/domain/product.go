package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog item that can be placed on an order line.
// Price is the current catalog price; order lines keep their own snapshot.
type Product struct {
	ID          int64           `json:"id,string" form:"id"`
	Name        string          `gorm:"index;size:255" json:"name" form:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price" form:"price"`
	Description string          `gorm:"type:text" json:"description" form:"description"`
	Image       string          `gorm:"size:1024" json:"image" form:"image"` // URL to product image (optional)
	IsAvailable bool            `gorm:"index;default:true" json:"is_available" form:"is_available"`
	IsPopular   bool            `gorm:"default:false" json:"is_popular" form:"is_popular"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
