package domain

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a buyer record referenced by orders. Removed customers
// are soft-deleted so historical orders keep a valid reference.
type Customer struct {
	ID        int64          `json:"id,string" form:"id"`
	Name      string         `gorm:"index;size:200" json:"name" form:"name"`
	Email     string         `gorm:"size:200" json:"email" form:"email"`
	Phone     string         `gorm:"size:50" json:"phone" form:"phone"`
	Address   string         `gorm:"size:500" json:"address" form:"address"`
	Remark    string         `gorm:"size:500" json:"remark" form:"remark"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
