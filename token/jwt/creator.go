package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-oauth2-client/token"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var _ token.Issuer = (*Creator)(nil)

// Creator signs HS256 access tokens with a shared key.
type Creator struct {
	issuer   string
	audience string
	key      []byte
}

// NewCreator creates a new JWT creator
func NewCreator(issuer, audience string, key []byte) (*Creator, error) {
	if len(key) == 0 {
		return nil, errors.New("signing key cannot be empty")
	}
	return &Creator{
		issuer:   issuer,
		audience: audience,
		key:      append([]byte(nil), key...),
	}, nil
}

// Issue creates a signed OAuth2 access token
func (c *Creator) Issue(grant token.Grant) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"iss":       c.issuer,                        // The issuer of the token
		"aud":       c.audience,                      // The audience for which the token is intended
		"sub":       grant.ClientID,                  // The client the code was granted to
		"client_id": grant.ClientID,                  // The OAuth2 client that requested the token
		"scope":     strings.Join(grant.Scope, " "),  // OAuth2 scopes granted to this token
		"iat":       now.Unix(),                      // Issued At
		"exp":       now.Add(grant.ExpiresIn).Unix(), // Expiry
		"jti":       uuid.New().String(),             // Unique token ID
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}
