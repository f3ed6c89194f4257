// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"topup-server/pricing"

	"github.com/labstack/echo/v4"
)

// GetPricingHandler godoc
// @Summary      Pricing catalog
// @Description  Lists airtime discount tiers and data bundles.
// @Tags         pricing
// @Produce      json
// @Success      200 {object} PricingResponse "Tiers and bundles"
// @Router       /v1/pricing [get]
func (h *Handler) GetPricingHandler(c echo.Context) error {
	tiers := h.Catalog.Tiers()
	res := PricingResponse{
		Tiers:   make([]TierDetails, 0, len(tiers)),
		Bundles: []BundleDetails{},
	}
	for _, t := range tiers {
		res.Tiers = append(res.Tiers, TierDetails{
			Tier:       t,
			MinPayable: pricing.FormatAmount(pricing.Payable(t.MinAmount, t.Discount)),
		})
	}
	for _, b := range h.Catalog.Bundles() {
		res.Bundles = append(res.Bundles, BundleDetails{Bundle: b, Savings: b.Savings()})
	}
	return c.JSON(http.StatusOK, res)
}
