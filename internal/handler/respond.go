package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lifehub-service/internal/apperror"
	"lifehub-service/pkg/logger"
)

// respond writes the success envelope shared by every endpoint
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// respondError maps a service error onto the failure envelope. Errors outside
// the taxonomy collapse to a generic 500 so internals never leak.
func respondError(c echo.Context, err error) error {
	status := apperror.StatusOf(err)
	if status >= 500 {
		logger.FromContext(c).Error("request failed", zap.Error(err))
	}

	body := echo.Map{
		"success": false,
		"message": apperror.MessageOf(err),
	}
	if code := apperror.CodeOf(err); code != "" {
		body["error"] = code
	}
	return c.JSON(status, body)
}

// userIDFrom returns the authenticated user's id set by the JWT middleware
func userIDFrom(c echo.Context) uint {
	userID, _ := c.Get("user_id").(uint)
	return userID
}
