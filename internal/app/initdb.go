package app

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salespoint/orderadmin/internal/domain"
	"github.com/salespoint/orderadmin/pkg/common"
)

type configSchema struct {
	Type        string
	Name        string
	Default     string
	Description string
}

var configSchemas = []configSchema{
	{"order", "CurrencyPrecision", "0", "Decimal places used when deriving line and order totals"},
	{"order", "PageSizeMax", "500", "Upper bound for the perPage list parameter"},
	{"system", "RetentionDays", "365", "Days soft-deleted records are kept before the purge job removes them"},
}

// checkSettings initializes missing sys_config entries with their defaults
func (a *Application) checkSettings() {
	for sortid, schema := range configSchemas {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", schema.Type, schema.Name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     common.UUIDint64(),
				Sort:   sortid,
				Type:   schema.Type,
				Name:   schema.Name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Type+"."+schema.Name),
				zap.String("default", schema.Default))
		}
	}
}

// checkDemoCustomers initializes a demo customer so a fresh install has a
// selectable option in the order form
func (a *Application) checkDemoCustomers() {
	defaultCustomers := []domain.Customer{
		{Name: "Walk-in Customer", Email: "N/A", Remark: "default walk-in customer"},
	}

	for _, c := range defaultCustomers {
		var count int64
		a.gormDB.Model(&domain.Customer{}).Where("name = ?", c.Name).Count(&count)
		if count == 0 {
			c.ID = common.UUIDint64()
			c.CreatedAt = time.Now()
			c.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&c).Error; err != nil {
				zap.L().Error("failed to create default customer", zap.String("name", c.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default customer", zap.String("name", c.Name))
			}
		}
	}
}

// checkDemoProducts initializes default catalog products
func (a *Application) checkDemoProducts() {
	defaultProducts := []domain.Product{
		{Name: "demo-widget-basic", Price: decimal.NewFromInt(15000), IsAvailable: true, IsPopular: true},
		{Name: "demo-widget-pro", Price: decimal.NewFromInt(24500), IsAvailable: true},
		{Name: "demo-service-annual", Price: decimal.NewFromInt(199000), IsAvailable: false},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
