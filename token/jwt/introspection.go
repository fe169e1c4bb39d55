package jwt

import (
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenIntrospection is the metadata of an access token issued by Creator.
// If Active is false the other fields may not be populated.
type TokenIntrospection struct {
	Active   bool     `json:"active"`
	ClientID string   `json:"client_id,omitempty"`
	Scope    []string `json:"scope,omitempty"`
	Exp      int64    `json:"exp,omitempty"`
	Iat      int64    `json:"iat,omitempty"`
	Iss      string   `json:"iss,omitempty"`
	Jti      string   `json:"jti,omitempty"`
}

// Introspect verifies the signature, issuer, audience and expiry of rawToken.
// An invalid token is reported inactive together with the reason.
func (c *Creator) Introspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return &TokenIntrospection{Active: false}, nil
	}

	claims := jwtlib.MapClaims{}
	_, err := jwtlib.ParseWithClaims(rawToken, claims,
		func(*jwtlib.Token) (any, error) { return c.key, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(c.issuer),
		jwtlib.WithAudience(c.audience),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return &TokenIntrospection{Active: false}, err
	}

	ti := &TokenIntrospection{Active: true, Iss: c.issuer}
	ti.ClientID, _ = claims["client_id"].(string)
	ti.Jti, _ = claims["jti"].(string)
	if scope, ok := claims["scope"].(string); ok {
		ti.Scope = strings.Fields(scope)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ti.Exp = exp.Unix()
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		ti.Iat = iat.Unix()
	}
	return ti, nil
}
