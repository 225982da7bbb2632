package adminapi

import (
	"net/http"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/salespoint/orderadmin/internal/domain"
	"github.com/salespoint/orderadmin/internal/order"
	"github.com/salespoint/orderadmin/internal/webserver"
)

// Line items arrive in the edit-record shape the form works with: numbers as
// strings, parsed leniently before the service validates them.
type orderLinePayload struct {
	ProductID  int64  `json:"product_id,string" validate:"required"`
	Price      string `json:"price"`
	Quantity   int64  `json:"quantity" validate:"required,min=1"`
	TotalPrice string `json:"total_price"`
}

type orderPayload struct {
	CustomerID int64              `json:"customer_id,string" validate:"required"`
	OrderDate  string             `json:"order_date" validate:"required"`
	Status     string             `json:"status" validate:"omitempty,oneof=Pending Paid Delivered Rejected"`
	TotalPrice string             `json:"total_price"`
	Lines      []orderLinePayload `json:"lines" validate:"dive"`
}

func (p *orderPayload) toInput() (order.OrderInput, error) {
	orderDate, err := dateparse.ParseAny(strings.TrimSpace(p.OrderDate))
	if err != nil {
		return order.OrderInput{}, err
	}
	in := order.OrderInput{
		CustomerID: p.CustomerID,
		OrderDate:  orderDate,
		Status:     domain.OrderStatus(p.Status),
		TotalPrice: order.ParseAmount(p.TotalPrice),
	}
	for _, ln := range p.Lines {
		in.Lines = append(in.Lines, order.LineEdit{
			ProductID:  ln.ProductID,
			Price:      order.ParseAmount(ln.Price),
			Quantity:   ln.Quantity,
			TotalPrice: order.ParseAmount(ln.TotalPrice),
		})
	}
	return in, nil
}

// registerOrderRoutes registers the order screen endpoints
func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/export", exportOrders)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiPUT("/orders/:id", updateOrder)
	webserver.ApiDELETE("/orders/:id", deleteOrder)
}

func listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// status tabs: All when the param is absent
	status := domain.OrderStatus(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !status.Valid() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown order status", nil)
	}

	rows, total, err := orderService.List(c.Request().Context(), order.ListOrdersQuery{
		Status:   status,
		Query:    c.QueryParam("q"),
		Page:     page,
		PageSize: pageSize,
		Sort:     c.QueryParam("sort"),
		Order:    c.QueryParam("order"),
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	o, err := orderService.Get(c.Request().Context(), id)
	if err != nil {
		return failServiceErr(c, err)
	}

	// lines are reshaped into edit records so the form can re-populate
	return ok(c, map[string]interface{}{
		"order": o,
		"lines": orderService.LineEdits(o),
	})
}

func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	in, err := payload.toInput()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order date", err.Error())
	}

	o, err := orderService.Create(c.Request().Context(), in)
	if err != nil {
		return failServiceErr(c, err)
	}
	return ok(c, o)
}

func updateOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	in, err := payload.toInput()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order date", err.Error())
	}

	o, err := orderService.Update(c.Request().Context(), id, in)
	if err != nil {
		return failServiceErr(c, err)
	}
	return ok(c, o)
}

func deleteOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	if err := orderService.Delete(c.Request().Context(), id); err != nil {
		return failServiceErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

// exportPageSize returns the CSV export window. An unseeded or non-positive
// order.PageSizeMax setting falls back to the same cap parsePagination uses,
// never to the 20-row default page.
func exportPageSize(configured int64) int {
	if configured <= 0 {
		return 500
	}
	return int(configured)
}

type orderCSV struct {
	ID         int64  `csv:"id"`
	Customer   string `csv:"customer"`
	OrderDate  string `csv:"order_date"`
	Status     string `csv:"status"`
	TotalPrice string `csv:"total_price"`
	Lines      int    `csv:"lines"`
}

func exportOrders(c echo.Context) error {
	status := domain.OrderStatus(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !status.Valid() {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown order status", nil)
	}

	rows, _, err := orderService.List(c.Request().Context(), order.ListOrdersQuery{
		Status:   status,
		Page:     1,
		PageSize: exportPageSize(appCtx.ConfigMgr().GetInt64("order", "PageSizeMax")),
		Sort:     "order_date",
		Order:    "DESC",
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	records := make([]orderCSV, 0, len(rows))
	for _, o := range rows {
		customer := ""
		if o.Customer != nil {
			customer = o.Customer.Name
		}
		records = append(records, orderCSV{
			ID:         o.ID,
			Customer:   customer,
			OrderDate:  o.OrderDate.Format("2006-01-02"),
			Status:     string(o.Status),
			TotalPrice: o.TotalPrice.String(),
			Lines:      len(o.Items),
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(records, c.Response())
}
