// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) HealthHandler(c echo.Context) error {
	res := HealthResponse{Status: "ok", Database: "ok"}

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		c.Logger().Errorf("Database ping failed: %v", err)
		res.Status = "degraded"
		res.Database = "unavailable"
		return c.JSON(http.StatusServiceUnavailable, res)
	}
	return c.JSON(http.StatusOK, res)
}
