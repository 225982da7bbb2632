package order

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salespoint/orderadmin/internal/domain"
)

// OrderServiceTestSuite runs against a throwaway postgres database, for
// example: TEST_PG_DSN="host=127.0.0.1 user=postgres password=postgres
// dbname=orderadmin_test port=5432 sslmode=disable" go test ./internal/order
type OrderServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *OrderService

	customerID int64
	productAID int64
	productBID int64
}

func TestOrderServiceSuite(t *testing.T) {
	if os.Getenv("TEST_PG_DSN") == "" {
		t.Skip("TEST_PG_DSN not set")
	}
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupSuite() {
	db, err := gorm.Open(postgres.Open(os.Getenv("TEST_PG_DSN")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(domain.Tables...))
	s.db = db
	s.svc = NewOrderService(db, nil)
}

func (s *OrderServiceTestSuite) SetupTest() {
	for _, table := range []string{"order_products", "orders", "products", "customers"} {
		s.Require().NoError(s.db.Exec("DELETE FROM " + table).Error)
	}

	customer := domain.Customer{ID: 1001, Name: "Acme Retail", Email: "buy@acme.test"}
	s.Require().NoError(s.db.Create(&customer).Error)
	s.customerID = customer.ID

	pa := domain.Product{ID: 2001, Name: "Widget Basic", Price: decimal.NewFromInt(15000), IsAvailable: true}
	pb := domain.Product{ID: 2002, Name: "Widget Deluxe", Price: decimal.NewFromInt(25000), IsAvailable: true}
	s.Require().NoError(s.db.Create(&pa).Error)
	s.Require().NoError(s.db.Create(&pb).Error)
	s.productAID = pa.ID
	s.productBID = pb.ID
}

func (s *OrderServiceTestSuite) input(lines ...LineEdit) OrderInput {
	return OrderInput{
		CustomerID: s.customerID,
		OrderDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Lines:      lines,
	}
}

func line(productID, qty, price int64) LineEdit {
	return LineEdit{
		ProductID:  productID,
		Quantity:   qty,
		Price:      decimal.NewFromInt(price),
		TotalPrice: decimal.NewFromInt(price * qty),
	}
}

func (s *OrderServiceTestSuite) TestCreateRoundTrip() {
	ctx := context.Background()

	o, err := s.svc.Create(ctx, s.input(line(s.productAID, 2, 15000), line(s.productBID, 1, 25000)))
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusPending, o.Status)
	s.True(o.TotalPrice.Equal(decimal.NewFromInt(55000)), "header total is the sum of line totals")

	got, err := s.svc.Get(ctx, o.ID)
	s.Require().NoError(err)
	s.Len(got.Items, 2)
	s.Require().NotNil(got.Customer)
	s.Equal("Acme Retail", got.Customer.Name)

	var sum decimal.Decimal
	for _, it := range got.Items {
		sum = sum.Add(it.TotalPrice)
	}
	s.True(got.TotalPrice.Equal(sum))
}

func (s *OrderServiceTestSuite) TestCreateValidation() {
	ctx := context.Background()

	_, err := s.svc.Create(ctx, OrderInput{OrderDate: time.Now(), Lines: nil})
	var ve *ValidationError
	s.Require().True(errors.As(err, &ve))
	s.Equal("customer_id", ve.Field)

	in := s.input(line(s.productAID, 0, 15000))
	_, err = s.svc.Create(ctx, in)
	s.Require().True(errors.As(err, &ve))
	s.Equal("quantity", ve.Field)

	in = s.input(line(s.productAID, 1, 15000), line(s.productAID, 2, 15000))
	_, err = s.svc.Create(ctx, in)
	s.Require().True(errors.As(err, &ve))
	s.Equal("product_id", ve.Field)
}

func (s *OrderServiceTestSuite) TestCreateAtomicity() {
	ctx := context.Background()

	// second line references a product that does not exist, so the whole
	// aggregate must roll back
	in := s.input(line(s.productAID, 1, 15000), line(999999, 1, 100))
	_, err := s.svc.Create(ctx, in)
	s.Require().Error(err)
	var re *ReferentialError
	s.True(errors.As(err, &re))

	var headers, pivots int64
	s.Require().NoError(s.db.Model(&domain.Order{}).Count(&headers).Error)
	s.Require().NoError(s.db.Model(&domain.OrderProduct{}).Count(&pivots).Error)
	s.Zero(headers)
	s.Zero(pivots)
}

func (s *OrderServiceTestSuite) TestCreateUnknownCustomer() {
	ctx := context.Background()

	in := s.input(line(s.productAID, 1, 15000))
	in.CustomerID = 888888
	_, err := s.svc.Create(ctx, in)
	var re *ReferentialError
	s.Require().True(errors.As(err, &re))
}

func (s *OrderServiceTestSuite) TestUpdateSyncAddRemove() {
	ctx := context.Background()

	o, err := s.svc.Create(ctx, s.input(line(s.productAID, 2, 15000)))
	s.Require().NoError(err)

	// replace product A with product B and bump the header total verbatim
	in := s.input(line(s.productBID, 3, 25000))
	in.Status = domain.OrderStatusPaid
	in.TotalPrice = decimal.NewFromInt(75000)
	got, err := s.svc.Update(ctx, o.ID, in)
	s.Require().NoError(err)

	s.Equal(domain.OrderStatusPaid, got.Status)
	s.True(got.TotalPrice.Equal(decimal.NewFromInt(75000)))
	s.Require().Len(got.Items, 1)
	s.Equal(s.productBID, got.Items[0].ProductID)
	s.Equal(int64(3), got.Items[0].Quantity)

	// the removed pivot row is gone for good, not soft-deleted
	var pivots int64
	s.Require().NoError(s.db.Unscoped().Model(&domain.OrderProduct{}).
		Where("order_id = ? AND product_id = ?", o.ID, s.productAID).
		Count(&pivots).Error)
	s.Zero(pivots)
}

func (s *OrderServiceTestSuite) TestUpdateIdempotent() {
	ctx := context.Background()

	o, err := s.svc.Create(ctx, s.input(line(s.productAID, 2, 15000)))
	s.Require().NoError(err)

	in := s.input(line(s.productAID, 2, 15000))
	in.TotalPrice = o.TotalPrice
	got, err := s.svc.Update(ctx, o.ID, in)
	s.Require().NoError(err)
	s.Require().Len(got.Items, 1)
	s.Equal(int64(2), got.Items[0].Quantity)
	s.True(got.TotalPrice.Equal(o.TotalPrice))
}

func (s *OrderServiceTestSuite) TestUpdateKeepsStatusWhenOmitted() {
	ctx := context.Background()

	in := s.input(line(s.productAID, 1, 15000))
	in.Status = domain.OrderStatusDelivered
	o, err := s.svc.Create(ctx, in)
	s.Require().NoError(err)

	upd := s.input(line(s.productAID, 1, 15000))
	upd.TotalPrice = o.TotalPrice
	got, err := s.svc.Update(ctx, o.ID, upd)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusDelivered, got.Status)
}

func (s *OrderServiceTestSuite) TestUpdateNotFound() {
	ctx := context.Background()

	_, err := s.svc.Update(ctx, 424242, s.input(line(s.productAID, 1, 15000)))
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *OrderServiceTestSuite) TestDeleteSoft() {
	ctx := context.Background()

	o, err := s.svc.Create(ctx, s.input(line(s.productAID, 1, 15000)))
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(ctx, o.ID))

	_, err = s.svc.Get(ctx, o.ID)
	s.True(errors.Is(err, gorm.ErrRecordNotFound))

	// the row survives under the soft-delete marker
	var count int64
	s.Require().NoError(s.db.Unscoped().Model(&domain.Order{}).
		Where("id = ?", o.ID).Count(&count).Error)
	s.Equal(int64(1), count)

	s.True(errors.Is(s.svc.Delete(ctx, o.ID), gorm.ErrRecordNotFound))
}

func (s *OrderServiceTestSuite) TestListStatusFilterAndSearch() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.svc.Create(ctx, s.input(line(s.productAID, 1, 15000)))
		s.Require().NoError(err)
	}
	paid := s.input(line(s.productBID, 1, 25000))
	paid.Status = domain.OrderStatusPaid
	_, err := s.svc.Create(ctx, paid)
	s.Require().NoError(err)

	rows, total, err := s.svc.List(ctx, ListOrdersQuery{Status: domain.OrderStatusPaid})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(rows, 1)
	s.Equal(domain.OrderStatusPaid, rows[0].Status)

	rows, total, err = s.svc.List(ctx, ListOrdersQuery{Query: "acme"})
	s.Require().NoError(err)
	s.Equal(int64(4), total)
	s.Len(rows, 4)

	_, total, err = s.svc.List(ctx, ListOrdersQuery{Query: "nomatch"})
	s.Require().NoError(err)
	s.Zero(total)

	rows, total, err = s.svc.List(ctx, ListOrdersQuery{Page: 2, PageSize: 3})
	s.Require().NoError(err)
	s.Equal(int64(4), total)
	s.Len(rows, 1)
}
