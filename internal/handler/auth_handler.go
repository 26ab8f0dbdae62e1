package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/model"
	"lifehub-service/pkg/database"
	"lifehub-service/pkg/jwtutil"
	"lifehub-service/pkg/logger"
	"lifehub-service/prometheus"
)

const resetTokenTTL = time.Hour

var authJWT *jwtutil.JWTUtil

// InitAuthHandler initializes the auth handlers with the JWT utility
func InitAuthHandler(jwtUtil *jwtutil.JWTUtil) {
	authJWT = jwtUtil
}

func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		log.Warn("Invalid registration data",
			zap.String("email", req.Email),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_registration")
		return respondError(c, apperror.NewValidation("email and password are required"))
	}
	if len(req.Password) < 8 {
		prometheus.RecordAuthError("weak_password")
		return respondError(c, apperror.NewValidation("password must be at least 8 characters"))
	}

	// Check if user already exists - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existingUser model.User
	if result := database.GetDB().Where("email = ?", req.Email).First(&existingUser); result.Error == nil {
		log.Warn("User already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{
			"success": false,
			"message": "email already registered",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return respondError(c, err)
	}

	user := model.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.Error(result.Error))
		prometheus.RecordAuthError("user_creation_failed")
		return respondError(c, result.Error)
	}

	log.Info("User registered", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return respond(c, http.StatusCreated, "User registered successfully", echo.Map{
		"user": user,
	})
}

func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().Where("email = ?", req.Email).First(&user); result.Error != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return respondError(c, apperror.NewInvalidCredentials())
	}

	// OAuth-only accounts carry no password hash.
	if user.Password == "" {
		prometheus.RecordAuthError("password_login_disabled")
		return respondError(c, apperror.NewInvalidCredentials())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return respondError(c, apperror.NewInvalidCredentials())
	}

	pair, err := authJWT.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Error("Failed to generate tokens", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return respondError(c, err)
	}

	log.Info("User logged in", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return respond(c, http.StatusOK, "Login successful", echo.Map{
		"user":   user,
		"tokens": pair,
	})
}

func RefreshToken(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("refresh")

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, apperror.NewValidation("refresh_token is required"))
	}

	claims, err := authJWT.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		log.Warn("Invalid refresh token", zap.Error(err))
		prometheus.RecordAuthError("invalid_refresh_token")
		return respondError(c, apperror.NewInvalidToken("invalid or expired refresh token"))
	}

	// The account may have been deleted since the token was minted.
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().First(&user, claims.UserID); result.Error != nil {
		log.Warn("Refresh for missing user", zap.Uint("user_id", claims.UserID))
		prometheus.RecordAuthError("user_not_found")
		return respondError(c, apperror.NewInvalidToken("invalid or expired refresh token"))
	}

	pair, err := authJWT.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Error("Failed to generate tokens", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Token refreshed", echo.Map{
		"tokens": pair,
	})
}

func GetProfile(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("profile_access")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().First(&user, userIDFrom(c)); result.Error != nil {
		log.Warn("Profile for missing user", zap.Uint("user_id", userIDFrom(c)))
		return respondError(c, apperror.NewNotFound("user", ""))
	}

	return respond(c, http.StatusOK, "Profile retrieved", user)
}

func UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("profile_update")

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, apperror.NewValidation("invalid request body"))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().First(&user, userIDFrom(c)); result.Error != nil {
		return respondError(c, apperror.NewNotFound("user", ""))
	}

	if req.Email != nil && *req.Email != "" && *req.Email != user.Email {
		var other model.User
		if result := database.GetDB().Where("email = ?", *req.Email).First(&other); result.Error == nil {
			prometheus.RecordAuthError("email_already_exists")
			return c.JSON(http.StatusConflict, echo.Map{
				"success": false,
				"message": "email already registered",
			})
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to update profile", zap.Error(result.Error))
		return respondError(c, result.Error)
	}

	log.Info("Profile updated", zap.Uint("user_id", user.ID))
	return respond(c, http.StatusOK, "Profile updated", user)
}

func ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("password_change")

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, apperror.NewValidation("invalid request body"))
	}
	if len(req.NewPassword) < 8 {
		prometheus.RecordAuthError("weak_password")
		return respondError(c, apperror.NewValidation("password must be at least 8 characters"))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().First(&user, userIDFrom(c)); result.Error != nil {
		return respondError(c, apperror.NewNotFound("user", ""))
	}

	if user.Password == "" {
		prometheus.RecordAuthError("password_login_disabled")
		return respondError(c, apperror.NewValidation("password login is not enabled for this account"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		log.Warn("Password change with wrong current password", zap.Uint("user_id", user.ID))
		prometheus.RecordAuthError("invalid_password")
		return respondError(c, apperror.NewInvalidCredentials())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		prometheus.RecordAuthError("password_hash_failed")
		return respondError(c, err)
	}
	user.Password = string(hashedPassword)

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to change password", zap.Error(result.Error))
		return respondError(c, result.Error)
	}

	log.Info("Password changed", zap.Uint("user_id", user.ID))
	return respond(c, http.StatusOK, "Password changed", nil)
}

// ForgotPassword always responds with success so callers cannot probe which
// emails have accounts.
func ForgotPassword(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("password_reset_request")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" {
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, apperror.NewValidation("email is required"))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().Where("email = ?", req.Email).First(&user); result.Error == nil {
		expiry := time.Now().Add(resetTokenTTL)
		user.ResetToken = model.NewSecureToken()
		user.ResetTokenExpiry = &expiry

		if result := database.GetDB().Save(&user); result.Error != nil {
			log.Error("Failed to store reset token", zap.Error(result.Error))
			return respondError(c, result.Error)
		}

		// Delivery is handled by an external mailer; the token is logged so
		// operators can hand it over while that integration is pending.
		log.Info("Password reset token issued",
			zap.Uint("user_id", user.ID),
			zap.String("reset_token", user.ResetToken),
			zap.Time("expires_at", expiry))
	} else {
		log.Info("Password reset requested for unknown email")
	}

	return respond(c, http.StatusOK, "If the account exists, a reset token has been issued", nil)
}

func ResetPassword(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAuthOperation("password_reset")

	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, apperror.NewValidation("token and new_password are required"))
	}
	if len(req.NewPassword) < 8 {
		prometheus.RecordAuthError("weak_password")
		return respondError(c, apperror.NewValidation("password must be at least 8 characters"))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().Where("reset_token = ?", req.Token).First(&user); result.Error != nil {
		prometheus.RecordAuthError("invalid_reset_token")
		return respondError(c, apperror.NewInvalidToken("invalid or expired reset token"))
	}
	if !user.HasValidResetToken(req.Token) {
		prometheus.RecordAuthError("expired_reset_token")
		return respondError(c, apperror.NewInvalidToken("invalid or expired reset token"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		prometheus.RecordAuthError("password_hash_failed")
		return respondError(c, err)
	}
	user.Password = string(hashedPassword)
	user.ResetToken = ""
	user.ResetTokenExpiry = nil

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to reset password", zap.Error(result.Error))
		return respondError(c, result.Error)
	}

	log.Info("Password reset", zap.Uint("user_id", user.ID))
	return respond(c, http.StatusOK, "Password reset", nil)
}
