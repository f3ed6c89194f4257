// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"topup-server/middlewares"

	"github.com/labstack/echo/v4"
)

// GetTransactionsHandler godoc
// @Summary      Purchase history
// @Description  Lists the purchases made in the current session, newest first.
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        page     query   int     false  "Page number (default 1)"
// @Param        page_size query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} TransactionListResponse "Paginated list of transactions"
// @Failure      401 {object} echo.HTTPError          "Unauthorized, invalid or expired session token"
// @Failure      500 {object} echo.HTTPError          "Internal server error"
// @Router       /v1/transactions [get]
func (h *Handler) GetTransactionsHandler(c echo.Context) error {
	logger := c.Logger()

	session := middlewares.CurrentSession(c)
	if session == nil {
		logger.Error("Session not found in context.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please start a new session",
		}
	}

	page := 1
	pageSize := 10
	if p := c.QueryParam("page"); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &page); err != nil || page < 1 {
			page = 1
		}
	}
	if ps := c.QueryParam("page_size"); ps != "" {
		if _, err := fmt.Sscanf(ps, "%d", &pageSize); err != nil || pageSize < 1 {
			pageSize = 10
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := h.Transactions.ListBySession(c.Request().Context(), session.ID, page, pageSize)
	if err != nil {
		logger.Errorf("Failed to fetch transactions: %v", err)
		return echo.ErrInternalServerError
	}

	data := make([]TransactionDetails, 0, len(items))
	for _, tx := range items {
		data = append(data, TransactionDetails{
			TransactionID:   tx.TransactionID,
			Reference:       tx.Reference,
			Kind:            string(tx.Kind),
			Status:          string(tx.Status),
			Network:         tx.Network,
			DetectedCarrier: tx.DetectedCarrier,
			PhoneNumber:     tx.PhoneNumber,
			Amount:          tx.Amount,
			OriginalAmount:  tx.OriginalAmount,
			Savings:         tx.Savings,
			Tier:            tx.Tier,
			BundleID:        tx.BundleID,
			CreatedAt:       tx.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	return c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
		Message: "Transactions retrieved successfully",
	})
}
