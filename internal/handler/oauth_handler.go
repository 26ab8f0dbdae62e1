package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/model"
	"lifehub-service/pkg/database"
	"lifehub-service/pkg/jwtutil"
	"lifehub-service/pkg/logger"
	"lifehub-service/pkg/oauth"
	"lifehub-service/prometheus"
)

const stateCookieName = "oauth_state"

var (
	oauthClients  map[string]*oauth.Client
	oauthJWT      *jwtutil.JWTUtil
	oauthStateTTL time.Duration
)

// InitOAuthHandler initializes the OAuth handlers with the provider clients
func InitOAuthHandler(clients map[string]*oauth.Client, jwtUtil *jwtutil.JWTUtil, stateTTL time.Duration) {
	oauthClients = clients
	oauthJWT = jwtUtil
	oauthStateTTL = stateTTL
}

func oauthClient(c echo.Context) (*oauth.Client, error) {
	provider := c.Param("provider")
	client, ok := oauthClients[provider]
	if !ok {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown OAuth provider %q", provider))
	}
	return client, nil
}

// OAuthRedirect sends the caller to the provider's authorization page with a
// fresh state token bound to a short-lived cookie.
func OAuthRedirect(c echo.Context) error {
	log := logger.FromContext(c)

	client, err := oauthClient(c)
	if err != nil {
		return respondError(c, err)
	}

	state := model.NewSecureToken()
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth/oauth",
		Expires:  time.Now().Add(oauthStateTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	prometheus.RecordOAuthOperation(client.Provider, "redirect")
	log.Info("OAuth redirect issued", zap.String("provider", client.Provider))
	return c.Redirect(http.StatusTemporaryRedirect, client.AuthCodeURL(state))
}

// OAuthCallback completes the authorization-code flow: state check against
// the cookie, code exchange, profile fetch, find-or-create, JWT pair.
func OAuthCallback(c echo.Context) error {
	log := logger.FromContext(c)

	client, err := oauthClient(c)
	if err != nil {
		return respondError(c, err)
	}

	if errParam := c.QueryParam("error"); errParam != "" {
		log.Warn("Provider denied authorization",
			zap.String("provider", client.Provider),
			zap.String("error", errParam))
		prometheus.RecordOAuthOperation(client.Provider, "denied")
		return respondError(c, apperror.NewOAuthFailed(client.Provider, fmt.Errorf("provider returned %s", errParam)))
	}

	state := c.QueryParam("state")
	cookie, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || cookie.Value != state {
		log.Warn("OAuth state mismatch", zap.String("provider", client.Provider))
		prometheus.RecordOAuthOperation(client.Provider, "state_mismatch")
		return respondError(c, apperror.NewForbidden("oauth state mismatch"))
	}

	// The state is single-use.
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth/oauth",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	code := c.QueryParam("code")
	if code == "" {
		return respondError(c, apperror.NewValidation("code is required"))
	}

	token, err := client.Exchange(code)
	if err != nil {
		prometheus.RecordOAuthOperation(client.Provider, "exchange_failed")
		return respondError(c, apperror.NewOAuthFailed(client.Provider, err))
	}

	profile, err := client.FetchProfile(token.AccessToken)
	if err != nil {
		prometheus.RecordOAuthOperation(client.Provider, "profile_failed")
		return respondError(c, apperror.NewOAuthFailed(client.Provider, err))
	}

	user, err := findOrCreateOAuthUser(client.Provider, profile)
	if err != nil {
		log.Error("Failed to persist OAuth user", zap.Error(err))
		return respondError(c, err)
	}

	pair, err := oauthJWT.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Error("Failed to generate tokens", zap.Error(err))
		return respondError(c, err)
	}

	prometheus.RecordOAuthOperation(client.Provider, "login")
	log.Info("OAuth login completed",
		zap.String("provider", client.Provider),
		zap.Uint("user_id", user.ID))
	return respond(c, http.StatusOK, "Login successful", echo.Map{
		"user":   user,
		"tokens": pair,
	})
}

// findOrCreateOAuthUser matches by email so a password account and an OAuth
// login converge on one user row.
func findOrCreateOAuthUser(provider string, profile *oauth.Profile) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	result := database.GetDB().Where("email = ?", profile.Email).First(&user)
	if result.Error == nil {
		changed := false
		if user.Provider == "" {
			user.Provider = provider
			user.ProviderSubject = profile.Subject
			changed = true
		}
		if user.Name == "" && profile.Name != "" {
			user.Name = profile.Name
			changed = true
		}
		if changed {
			if result := database.GetDB().Save(&user); result.Error != nil {
				return nil, result.Error
			}
		}
		return &user, nil
	}

	user = model.User{
		Email:           profile.Email,
		Name:            profile.Name,
		Provider:        provider,
		ProviderSubject: profile.Subject,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&user); result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
