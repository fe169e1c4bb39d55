package clients

import (
	"errors"

	"github.com/jrsteele09/go-oauth2-client/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidScope   = errors.New("invalid scope")
)

// Client is a client registration held by the authorization server.
type Client struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	RedirectURI string   `json:"redirectURI"`
	Scopes      []string `json:"scopes"` // Allowed scopes for this client
	// SecretHash is the bcrypt hash of the client secret. Empty for public clients.
	SecretHash []byte `json:"-"`
}

// IsConfidential returns true if the client has a secret
func (c *Client) IsConfidential() bool {
	return len(c.SecretHash) > 0
}

// SetSecret hashes and stores secret. An empty secret makes the client public.
func (c *Client) SetSecret(secret string) error {
	if secret == "" {
		c.SecretHash = nil
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.SecretHash = hash
	return nil
}

// VerifySecret reports whether secret matches. Public clients match only an empty secret.
func (c *Client) VerifySecret(secret string) bool {
	if !c.IsConfidential() {
		return secret == ""
	}
	return bcrypt.CompareHashAndPassword(c.SecretHash, []byte(secret)) == nil
}

// HasScope checks if the client has permission for a specific scope
func (c *Client) HasScope(scope string) bool {
	return utils.Contains(c.Scopes, scope)
}

// ValidateScopes checks every requested scope and returns the first one that is not
// allowed.
func (c *Client) ValidateScopes(requested []string) (string, error) {
	for _, scope := range requested {
		if !c.HasScope(scope) {
			return scope, ErrInvalidScope
		}
	}
	return "", nil
}

func (c *Client) clone() *Client {
	cp := *c
	cp.Scopes = append([]string(nil), c.Scopes...)
	cp.SecretHash = append([]byte(nil), c.SecretHash...)
	return &cp
}
