// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"topup-server/phonecheck"

	"github.com/labstack/echo/v4"
)

// VerifyPhoneHandler godoc
// @Summary      Verify a phone number
// @Description  Checks the number format and detects its carrier from the prefix. A number on another network than the selected one is still valid; a notice is returned instead.
// @Tags         phone
// @Accept       json
// @Produce      json
// @Param        request  body  VerifyPhoneRequest  true  "Number to verify"
// @Success      200 {object} VerifyPhoneResponse "Validation result"
// @Failure      400 {object} echo.HTTPError      "Bad request"
// @Router       /v1/phone/verify [post]
func (h *Handler) VerifyPhoneHandler(c echo.Context) error {
	var req VerifyPhoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result := phonecheck.Validate(h.Carriers, req.PhoneNumber, req.Network)
	res := VerifyPhoneResponse{
		Valid:       result.Valid,
		CarrierID:   result.CarrierID,
		Carrier:     result.CarrierName,
		CountryCode: result.CountryCode,
		E164:        result.E164,
		Mismatch:    result.Mismatch,
		Notice:      result.Notice(),
	}
	if result.Err != nil {
		res.Message = result.Err.Error()
	}
	return c.JSON(http.StatusOK, res)
}
