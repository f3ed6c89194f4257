// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"topup-server/middlewares"
	"topup-server/pricing"

	"github.com/labstack/echo/v4"
)

// CreateSessionHandler godoc
// @Summary      Start a session
// @Description  Creates an anonymous purchase session and returns a bearer token for it. Savings from discounted purchases accumulate on the session.
// @Tags         sessions
// @Produce      json
// @Success      201 {object} SessionResponse "Session created"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/sessions [post]
func (h *Handler) CreateSessionHandler(c echo.Context) error {
	logger := c.Logger()
	req := c.Request()

	session, err := h.Sessions.Create(req.Context(), h.SessionTTL, c.RealIP(), req.UserAgent())
	if err != nil {
		logger.Errorf("Failed to create session: %v", err)
		return echo.ErrInternalServerError
	}

	token, err := middlewares.IssueToken(session)
	if err != nil {
		logger.Errorf("Failed to sign token: %v", err)
		return echo.ErrInternalServerError
	}

	res := SessionResponse{
		SessionID:    session.SessionID,
		SessionToken: token,
		Message:      "Session started",
	}
	if session.ExpiresAt != nil {
		res.ExpiresAt = session.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z")
	}

	logger.Infof("Session %s created.", session.SessionID)
	return c.JSON(http.StatusCreated, res)
}

// GetSavingsHandler godoc
// @Summary      Get session savings
// @Description  Returns the total discount received on successful purchases in the current session.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object} SavingsResponse "Cumulative savings"
// @Failure      401 {object} echo.HTTPError  "Unauthorized, invalid or expired session token"
// @Router       /v1/sessions/savings [get]
func (h *Handler) GetSavingsHandler(c echo.Context) error {
	session := middlewares.CurrentSession(c)
	if session == nil {
		c.Logger().Error("Session not found in context.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please start a new session",
		}
	}

	return c.JSON(http.StatusOK, SavingsResponse{
		SessionID:    session.SessionID,
		TotalSavings: session.TotalSavings,
		Display:      pricing.FormatAmount(session.TotalSavings),
	})
}
