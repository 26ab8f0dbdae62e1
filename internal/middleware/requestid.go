package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lifehub-service/pkg/logger"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(logger.RequestIDKey)
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set(logger.RequestIDKey, requestID)
			}

			// Make the ID visible to the client and to FromContext
			c.Response().Header().Set(logger.RequestIDKey, requestID)
			c.Set(logger.RequestIDKey, requestID)

			return next(c)
		}
	}
}
