package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/salespoint/orderadmin/internal/webserver"
	"github.com/salespoint/orderadmin/pkg/metrics"
)

// registerMetricsRoutes registers the dashboard chart endpoint
func registerMetricsRoutes() {
	webserver.ApiGET("/metrics/:name", queryMetrics)
}

// queryMetrics returns the raw datapoints of one metric, defaulting to the
// last hour when start/end are absent.
func queryMetrics(c echo.Context) error {
	name := c.Param("name")
	end := time.Now().Unix()
	start := end - 3600
	if v, err := strconv.ParseInt(c.QueryParam("start"), 10, 64); err == nil {
		start = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("end"), 10, 64); err == nil {
		end = v
	}
	if start >= end {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "start must be before end", nil)
	}

	points, err := metrics.Range(name, start, end)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to query metric", err.Error())
	}
	return ok(c, points)
}
