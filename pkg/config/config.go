package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OAuth    OAuthConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	SigningKey             string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
}

// OAuthProviderConfig holds one provider's OAuth2 endpoints and credentials
type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	ProfileURL   string
	Scopes       string
}

// OAuthConfig holds OAuth2 login configuration
type OAuthConfig struct {
	StateTTL  time.Duration
	Providers map[string]OAuthProviderConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics-related configuration
type MetricsConfig struct {
	Prefix string
}

// Load loads the application configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "lifehub_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnv("DB_LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			SigningKey:             getEnv("JWT_SIGNING_KEY", "lifehubsecretkey"),
			AccessTokenExpiration:  getEnvAsDuration("JWT_ACCESS_TOKEN_EXPIRATION", 15*time.Minute),
			RefreshTokenExpiration: getEnvAsDuration("JWT_REFRESH_TOKEN_EXPIRATION", 7*24*time.Hour),
		},
		OAuth: OAuthConfig{
			StateTTL: getEnvAsDuration("OAUTH_STATE_TTL", 10*time.Minute),
			Providers: map[string]OAuthProviderConfig{
				"google": {
					ClientID:     getEnv("OAUTH_GOOGLE_CLIENT_ID", ""),
					ClientSecret: getEnv("OAUTH_GOOGLE_CLIENT_SECRET", ""),
					RedirectURL:  getEnv("OAUTH_GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/oauth/google/callback"),
					AuthURL:      getEnv("OAUTH_GOOGLE_AUTH_URL", "https://accounts.google.com/o/oauth2/v2/auth"),
					TokenURL:     getEnv("OAUTH_GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),
					ProfileURL:   getEnv("OAUTH_GOOGLE_PROFILE_URL", "https://openidconnect.googleapis.com/v1/userinfo"),
					Scopes:       getEnv("OAUTH_GOOGLE_SCOPES", "openid email profile"),
				},
				"github": {
					ClientID:     getEnv("OAUTH_GITHUB_CLIENT_ID", ""),
					ClientSecret: getEnv("OAUTH_GITHUB_CLIENT_SECRET", ""),
					RedirectURL:  getEnv("OAUTH_GITHUB_REDIRECT_URL", "http://localhost:8080/auth/oauth/github/callback"),
					AuthURL:      getEnv("OAUTH_GITHUB_AUTH_URL", "https://github.com/login/oauth/authorize"),
					TokenURL:     getEnv("OAUTH_GITHUB_TOKEN_URL", "https://github.com/login/oauth/access_token"),
					ProfileURL:   getEnv("OAUTH_GITHUB_PROFILE_URL", "https://api.github.com/user"),
					Scopes:       getEnv("OAUTH_GITHUB_SCOPES", "read:user user:email"),
				},
			},
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "lifehub"),
		},
	}, nil
}

// Helper functions to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
