// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"topup-server/commons"
	"topup-server/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	SessionContextKey = "session"
	tokenIssuer       = "topup-server"
)

type SessionFinder interface {
	FindActive(ctx context.Context, sessionID, token string) (*models.Session, error)
}

func jwtSecret() []byte {
	return []byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key"))
}

// IssueToken signs a bearer token naming the session. The token carries no
// state of its own; every request is checked against the session store.
func IssueToken(session *models.Session) (string, error) {
	claims := jwt.MapClaims{
		"iss": tokenIssuer,
		"iat": time.Now().Unix(),
		"sid": session.SessionID,
		"jti": session.Token,
	}
	if session.ExpiresAt != nil {
		claims["exp"] = session.ExpiresAt.Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

func unauthorized() error {
	return &echo.HTTPError{
		Code:    http.StatusUnauthorized,
		Message: "Invalid or expired session token, please start a new session",
	}
}

func VerifySession(store SessionFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := c.Logger()

			authHeader := c.Request().Header.Get("Authorization")
			sessionToken, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || sessionToken == "" {
				logger.Error("Authorization header missing or invalid.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Authorization token is required",
				}
			}

			token, err := jwt.Parse(sessionToken, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return jwtSecret(), nil
			})
			if err != nil || !token.Valid {
				logger.Error("JWT Failed to parse or is invalid: ", err)
				return unauthorized()
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Error("Failed to parse JWT claims.")
				return unauthorized()
			}
			sessionID, _ := claims["sid"].(string)
			tokenID, _ := claims["jti"].(string)
			if sessionID == "" || tokenID == "" {
				logger.Error("JWT is missing session claims.")
				return unauthorized()
			}

			session, err := store.FindActive(c.Request().Context(), sessionID, tokenID)
			if err != nil {
				logger.Errorf("Session lookup failed: %v", err)
				return unauthorized()
			}

			c.Set(SessionContextKey, session)
			return next(c)
		}
	}
}

// CurrentSession returns the session stored by VerifySession, or nil.
func CurrentSession(c echo.Context) *models.Session {
	session, _ := c.Get(SessionContextKey).(*models.Session)
	return session
}
