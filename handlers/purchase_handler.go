// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"topup-server/middlewares"
	"topup-server/phonecheck"
	"topup-server/pricing"
	"topup-server/purchase"

	"github.com/labstack/echo/v4"
)

// PurchaseAirtimeHandler godoc
// @Summary      Buy airtime
// @Description  Buys discounted airtime for any supported number. The tier discount is taken off the face value and added to the session savings.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        request  body  AirtimePurchaseRequest  true  "Airtime purchase"
// @Success      200 {object} PurchaseResponse "Purchase completed"
// @Failure      400 {object} echo.HTTPError   "Bad request"
// @Failure      401 {object} echo.HTTPError   "Unauthorized, invalid or expired session token"
// @Failure      409 {object} echo.HTTPError   "Another purchase is in progress"
// @Failure      502 {object} echo.HTTPError   "Transaction failed"
// @Router       /v1/purchases/airtime [post]
func (h *Handler) PurchaseAirtimeHandler(c echo.Context) error {
	logger := c.Logger()

	var req AirtimePurchaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if req.Tier == "" {
		if tiers := h.Catalog.Tiers(); len(tiers) > 0 {
			req.Tier = tiers[0].Name
		}
	}
	tier, ok := h.Catalog.Tier(req.Tier)
	if !ok {
		logger.Errorf("Unknown tier %q.", req.Tier)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Tier %q does not exist", req.Tier),
		}
	}
	if req.Amount < tier.MinAmount {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Minimum amount for the %s tier is %s", tier.Name, pricing.FormatAmount(tier.MinAmount)),
		}
	}

	return h.submit(c, purchase.NewAirtimeRequest(req.Network, req.PhoneNumber, req.Amount, tier.Name))
}

// PurchaseBundleHandler godoc
// @Summary      Buy a data bundle
// @Description  Buys a discounted data bundle for any supported number.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        request  body  BundlePurchaseRequest  true  "Bundle purchase"
// @Success      200 {object} PurchaseResponse "Purchase completed"
// @Failure      400 {object} echo.HTTPError   "Bad request"
// @Failure      401 {object} echo.HTTPError   "Unauthorized, invalid or expired session token"
// @Failure      409 {object} echo.HTTPError   "Another purchase is in progress"
// @Failure      502 {object} echo.HTTPError   "Transaction failed"
// @Router       /v1/purchases/bundle [post]
func (h *Handler) PurchaseBundleHandler(c echo.Context) error {
	var req BundlePurchaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.submit(c, purchase.NewBundleRequest(req.Network, req.PhoneNumber, req.BundleID))
}

func (h *Handler) submit(c echo.Context, req purchase.Request) error {
	logger := c.Logger()

	session := middlewares.CurrentSession(c)
	if session == nil {
		logger.Error("Session not found in context.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please start a new session",
		}
	}

	outcome, err := h.Submitter.Submit(c.Request().Context(), session, req)
	if err != nil {
		logger.Errorf("Purchase failed: %v", err)
		return purchaseError(err)
	}

	return c.JSON(http.StatusOK, PurchaseResponse{
		TransactionID:   outcome.Result.ID,
		Reference:       outcome.Result.Reference,
		Status:          outcome.Result.Status,
		Kind:            string(outcome.Kind),
		Recipient:       outcome.Result.Recipient,
		Amount:          outcome.Result.Amount,
		OriginalAmount:  outcome.OriginalAmount,
		Savings:         outcome.Savings,
		TotalSavings:    outcome.TotalSavings,
		AmountDisplay:   pricing.FormatAmount(outcome.Result.Amount),
		SavingsDisplay:  pricing.FormatAmount(outcome.Savings),
		DetectedCarrier: outcome.Validation.CarrierID,
		Notice:          outcome.Notice(),
		Message:         outcome.Result.Message,
	})
}

func purchaseError(err error) error {
	switch {
	case errors.Is(err, purchase.ErrMissingField):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Please fill in all required fields"}
	case errors.Is(err, phonecheck.ErrInvalidFormat):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Please enter a valid phone number (11 digits starting with 0)"}
	case errors.Is(err, phonecheck.ErrUnknownCarrier):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Phone number does not belong to a supported network"}
	case errors.Is(err, purchase.ErrUnknownNetwork):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Please select a supported network"}
	case errors.Is(err, purchase.ErrUnknownTier), errors.Is(err, purchase.ErrUnknownBundle), errors.Is(err, purchase.ErrWrongKind):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, purchase.ErrSubmissionInFlight):
		return &echo.HTTPError{Code: http.StatusConflict, Message: "A purchase is already in progress, please wait for it to complete"}
	default:
		return &echo.HTTPError{Code: http.StatusBadGateway, Message: "Transaction failed. Please try again."}
	}
}
