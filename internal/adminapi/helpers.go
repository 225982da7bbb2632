package adminapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/salespoint/orderadmin/internal/app"
	"github.com/salespoint/orderadmin/internal/order"
	"github.com/salespoint/orderadmin/internal/webserver"
)

var (
	appCtx        app.AppContext
	orderService  *order.OrderService
	productStore  order.ProductStore
	customerStore order.CustomerStore
)

// InitRouter wires the handlers to the application context and registers
// every admin route. Call after webserver.Init.
func InitRouter(ctx app.AppContext) {
	appCtx = ctx
	orderService = order.NewOrderService(ctx.DB(), currencyPrecision)
	productStore = order.NewGormProductStore(ctx.DB())
	customerStore = order.NewGormCustomerStore(ctx.DB())

	registerOrderRoutes()
	registerProductRoutes()
	registerCustomerRoutes()
	registerSettingsRoutes()
	registerMetricsRoutes()
}

func currencyPrecision() int32 {
	return int32(appCtx.ConfigMgr().GetInt("order", "CurrencyPrecision"))
}

// GetDB returns the request-scoped gorm handle injected by the webserver.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextDBKey).(*gorm.DB)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": "OK",
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":    "OK",
		"data":    rows,
		"total":   total,
		"page":    page,
		"perPage": pageSize,
	})
}

// parsePagination reads page and perPage (legacy pageSize) query params and
// caps the page size with the order.PageSizeMax setting.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}

	pageSize = 20
	perPage := c.QueryParam("perPage")
	if perPage == "" {
		perPage = c.QueryParam("pageSize")
	}
	if ps, err := strconv.Atoi(perPage); err == nil && ps > 0 {
		pageSize = ps
	}

	max := int(appCtx.ConfigMgr().GetInt64("order", "PageSizeMax"))
	if max <= 0 {
		max = 500
	}
	if pageSize > max {
		pageSize = max
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fe.Field()+" failed "+fe.Tag())
		}
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Request validation failed", details)
	}
	return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Request validation failed", err.Error())
}

// failServiceErr maps the order service error taxonomy onto HTTP statuses.
func failServiceErr(c echo.Context, err error) error {
	var ve *order.ValidationError
	if errors.As(err, &ve) {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error(), nil)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Record not found", nil)
	}
	var re *order.ReferentialError
	if errors.As(err, &re) {
		return fail(c, http.StatusConflict, "REFERENTIAL_ERROR", "Referenced record does not exist", re.Error())
	}
	var te *order.TransactionError
	if errors.As(err, &te) {
		return fail(c, http.StatusInternalServerError, "TRANSACTION_ERROR", "Atomic write failed, no changes were applied", te.Error())
	}
	return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Unexpected store failure", err.Error())
}
