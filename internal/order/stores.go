package order

import (
	"context"

	"gorm.io/gorm"

	"github.com/salespoint/orderadmin/internal/domain"
)

// ProductStore is the catalog boundary consumed by the core: the order edit
// surface only reads price and availability.
type ProductStore interface {
	FindProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListAvailableProducts(ctx context.Context) ([]domain.Product, error)
}

// CustomerStore is the customer boundary consumed by the core.
type CustomerStore interface {
	FindCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// GormProductStore is the GORM implementation of ProductStore.
type GormProductStore struct {
	db *gorm.DB
}

func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

func (r *GormProductStore) FindProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductStore) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// GormCustomerStore is the GORM implementation of CustomerStore.
type GormCustomerStore struct {
	db *gorm.DB
}

func NewGormCustomerStore(db *gorm.DB) *GormCustomerStore {
	return &GormCustomerStore{db: db}
}

func (r *GormCustomerStore) FindCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCustomerStore) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}
