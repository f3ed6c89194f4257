// SPDX-License-Identifier: GPL-3.0-only

package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// PurchaseStatusError labels purchases the transaction service did not answer.
const PurchaseStatusError = "ERROR"

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topup_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"path", "method", "status"},
	)

	ErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topup_requests_errors_total",
			Help: "Total number of HTTP requests that ended with a 4xx or 5xx status.",
		},
		[]string{"path", "method", "status"},
	)

	// PurchaseCount's status label is SUCCESS, FAILED or PurchaseStatusError.
	PurchaseCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topup_purchases_total",
			Help: "Purchases submitted to the transaction service, by kind and outcome.",
		},
		[]string{"kind", "status"},
	)

	SavingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "topup_savings_total",
			Help: "Sum of discounts granted on successful purchases.",
		},
	)

	registerOnce sync.Once
)

// PrometheusInit registers the collectors with the default registry.
func PrometheusInit() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCount, ErrorCount, PurchaseCount, SavingsTotal)
	})
}

// TrackMetrics counts requests by route pattern and status.
func TrackMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			code := strconv.Itoa(status)
			RequestCount.WithLabelValues(path, c.Request().Method, code).Inc()
			if status >= 400 {
				ErrorCount.WithLabelValues(path, c.Request().Method, code).Inc()
			}
			return err
		}
	}
}
