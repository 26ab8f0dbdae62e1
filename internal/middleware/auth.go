package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lifehub-service/internal/apperror"
	"lifehub-service/pkg/jwtutil"
	"lifehub-service/pkg/logger"
	"lifehub-service/prometheus"
)

// JWTAuthMiddleware creates a middleware that validates JWT access tokens
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Extract the token from the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_token")
				return unauthorized(c, "Missing authorization header")
			}

			// Check if the header format is valid
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("invalid_auth_header")
				return unauthorized(c, "Invalid authorization header format")
			}

			tokenString := parts[1]

			// Validate the token. Refresh tokens are rejected here so they
			// cannot be replayed against protected endpoints.
			claims, err := jwtUtil.ValidateAccessToken(tokenString)
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return unauthorized(c, "Invalid or expired token")
			}

			// Store the claims in the context for later use
			c.Set("user", claims)
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)

			// Update logger with user information
			log = log.With(zap.Uint("user_id", claims.UserID))
			c.Set("logger", log)

			log.Debug("JWT token validated successfully",
				zap.String("email", claims.Email))

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"message": message,
		"error":   apperror.CodeInvalidToken,
	})
}
