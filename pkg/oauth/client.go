package oauth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"lifehub-service/pkg/config"
)

// Client talks to one OAuth2 provider: authorization redirect, code
// exchange and profile fetch.
type Client struct {
	Provider   string
	Config     config.OAuthProviderConfig
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// TokenResponse represents the response from the provider's token endpoint
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// ErrorResponse represents an OAuth error response
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Profile is the provider-agnostic identity extracted from the profile
// endpoint.
type Profile struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// NewClient creates a new OAuth client for one provider
func NewClient(provider string, cfg config.OAuthProviderConfig, logger *zap.Logger) *Client {
	return &Client{
		Provider:   provider,
		Config:     cfg,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

// Clients builds a client per configured provider
func Clients(cfg config.OAuthConfig, logger *zap.Logger) map[string]*Client {
	clients := make(map[string]*Client, len(cfg.Providers))
	for name, providerCfg := range cfg.Providers {
		clients[name] = NewClient(name, providerCfg, logger)
	}
	return clients
}

// AuthCodeURL builds the provider's authorization URL for the given state
func (c *Client) AuthCodeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.Config.ClientID)
	params.Set("redirect_uri", c.Config.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", c.Config.Scopes)
	params.Set("state", state)
	return fmt.Sprintf("%s?%s", c.Config.AuthURL, params.Encode())
}

// Exchange trades an authorization code for the provider's tokens
func (c *Client) Exchange(code string) (*TokenResponse, error) {
	c.Logger.Info("Exchanging authorization code",
		zap.String("provider", c.Provider))

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", c.Config.ClientID)
	data.Set("client_secret", c.Config.ClientSecret)
	data.Set("redirect_uri", c.Config.RedirectURL)

	req, err := http.NewRequest("POST", c.Config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Token request failed", zap.String("provider", c.Provider), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Logger.Error("Failed to read token response", zap.Error(err))
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			c.Logger.Error("Failed to parse error response",
				zap.Int("status_code", resp.StatusCode),
				zap.String("response", string(body)))
			return nil, fmt.Errorf("error exchanging code: %d %s", resp.StatusCode, string(body))
		}
		c.Logger.Error("Code exchange failed",
			zap.String("error", errorResp.Error),
			zap.String("description", errorResp.ErrorDescription))
		return nil, fmt.Errorf("error exchanging code: %s - %s", errorResp.Error, errorResp.ErrorDescription)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		c.Logger.Error("Failed to parse token response", zap.Error(err))
		return nil, err
	}
	if tokenResp.AccessToken == "" {
		// Some providers answer 200 with an error payload.
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Error != "" {
			return nil, fmt.Errorf("error exchanging code: %s - %s", errorResp.Error, errorResp.ErrorDescription)
		}
		return nil, fmt.Errorf("token response carried no access token")
	}

	c.Logger.Info("Code exchange successful", zap.String("provider", c.Provider))
	return &tokenResp, nil
}

// providerProfile covers the profile fields of the supported providers.
// Google's userinfo uses sub/email/name; GitHub's /user uses id/login.
type providerProfile struct {
	Sub   string      `json:"sub"`
	ID    json.Number `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Login string      `json:"login"`
}

// FetchProfile loads the authenticated user's profile
func (c *Client) FetchProfile(accessToken string) (*Profile, error) {
	req, err := http.NewRequest("GET", c.Config.ProfileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Profile request failed", zap.String("provider", c.Provider), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.Logger.Error("Profile request returned error status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(body)))
		return nil, fmt.Errorf("error fetching profile: %d %s", resp.StatusCode, string(body))
	}

	var raw providerProfile
	if err := json.Unmarshal(body, &raw); err != nil {
		c.Logger.Error("Failed to parse profile response", zap.Error(err))
		return nil, err
	}

	profile := &Profile{
		Subject: raw.Sub,
		Email:   raw.Email,
		Name:    raw.Name,
	}
	if profile.Subject == "" {
		profile.Subject = raw.ID.String()
	}
	if profile.Name == "" {
		profile.Name = raw.Login
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("provider %q returned no email", c.Provider)
	}

	c.Logger.Info("Profile fetched", zap.String("provider", c.Provider))
	return profile, nil
}
