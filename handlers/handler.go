// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"topup-server/commons/carriers"
	"topup-server/db"
	"topup-server/pricing"
	"topup-server/purchase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Handler carries what the HTTP layer needs. Build it once in main and
// register its methods with routes.RegisterRoutes.
type Handler struct {
	DB           *gorm.DB
	Carriers     *carriers.LookupIndex
	Catalog      *pricing.Catalog
	Sessions     *db.SessionStore
	Transactions *db.TransactionStore
	Submitter    *purchase.Submitter
	Balances     purchase.BalanceProvider
	SessionTTL   time.Duration
}

// RequestValidator plugs go-playground/validator into echo.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// bindAndValidate decodes the JSON body into req and checks its tags.
func bindAndValidate(c echo.Context, req any) error {
	logger := c.Logger()

	if err := c.Bind(req); err != nil {
		logger.Error("Invalid request payload: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, jsonFieldName(fe.Field()))
			}
			logger.Errorf("Request validation failed: %v", err)
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("Please fill in all required fields: %s", strings.Join(fields, ", ")),
			}
		}
		logger.Errorf("Request validation failed: %v", err)
		return echo.ErrBadRequest
	}
	return nil
}

var jsonFieldNames = map[string]string{
	"Network":     "network",
	"PhoneNumber": "phone_number",
	"Amount":      "amount",
	"BundleID":    "bundle_id",
}

func jsonFieldName(field string) string {
	if name, ok := jsonFieldNames[field]; ok {
		return name
	}
	return strings.ToLower(field)
}
