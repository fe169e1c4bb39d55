package config

import "time"

type OAuthConfig interface {
	GetAuthCode() string
	GetAccessTokenExpiry() time.Duration
	GetTokenScope() []string
	GetTokenSigningKey() string
	GetTokenIssuer() string
	GetTokenAudience() string
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

// GetAuthCode is the authorization code handed out by the server.
func (OAuth) GetAuthCode() string {
	return GetEnv("AUTH_CODE", "MOCK_CODE")
}

// GetAccessTokenExpiry is sent as expires_in. Zero leaves it out.
func (OAuth) GetAccessTokenExpiry() time.Duration {
	return GetEnvDuration("ACCESS_TOKEN_EXPIRY", 1*time.Hour)
}

func (OAuth) GetTokenScope() []string {
	return GetEnvList("TOKEN_SCOPE", nil)
}

// GetTokenSigningKey switches the server from the static token to signed JWTs when set.
func (OAuth) GetTokenSigningKey() string {
	return GetEnv("TOKEN_SIGNING_KEY", "")
}

func (OAuth) GetTokenIssuer() string {
	return GetEnv("TOKEN_ISSUER", "http://localhost:8080")
}

func (OAuth) GetTokenAudience() string {
	return GetEnv("TOKEN_AUDIENCE", "api.example.com")
}
