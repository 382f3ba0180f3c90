package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// AuthMiddleware extracts the authenticated principal from the X-User-Id
// header. Identity is established upstream; this service only consumes it.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get("X-User-Id")
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing X-User-Id header")
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the principal set by AuthMiddleware.
func UserID(c echo.Context) string {
	userID, _ := c.Get(userIDKey).(string)
	return userID
}
