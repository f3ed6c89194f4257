// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"topup-server/commons"
	"topup-server/handlers"
	"topup-server/middlewares"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, h *handlers.Handler) {
	commons.Logger.Debug("Registering v1 routes")
	requireSession := middlewares.VerifySession(h.Sessions)

	e.GET("/healthz", h.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api_v1 := e.Group("/v1")
	api_v1.POST("/sessions", h.CreateSessionHandler)
	api_v1.GET("/sessions/savings", h.GetSavingsHandler, requireSession)
	api_v1.GET("/countries", h.GetCountriesHandler)
	api_v1.GET("/countries/:code/networks", h.GetCountryNetworksHandler)
	api_v1.GET("/networks/balances", h.GetNetworkBalancesHandler)
	api_v1.GET("/networks/:id", h.GetNetworkHandler)
	api_v1.POST("/phone/verify", h.VerifyPhoneHandler)
	api_v1.GET("/pricing", h.GetPricingHandler)
	api_v1.POST("/purchases/airtime", h.PurchaseAirtimeHandler, requireSession)
	api_v1.POST("/purchases/bundle", h.PurchaseBundleHandler, requireSession)
	api_v1.GET("/transactions", h.GetTransactionsHandler, requireSession)
	commons.Logger.Info("v1 routes registered successfully")
}
