package oauth2

import (
	"encoding/json"
	"strings"
)

// TokenResponse represents the successful response from the token endpoint
// (RFC 6749 §5.1).
type TokenResponse struct {
	// AccessToken is the credential used to access protected resources.
	// Example: "TU9DS19UT0tFTg==" or a signed JWT
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken string `json:"access_token"`

	// TokenType indicates how to use the access token.
	// Example: "bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 3600
	// Optional: omitted when the server does not advertise an expiry
	ExpiresIn *int64 `json:"expires_in,omitempty"`

	// Scope lists the granted permissions.
	// Example: ["api.example.com/user.profile", "api.example.com/add_item"]
	// Note: May be less than requested if some scopes were denied
	Scope Scope `json:"scope,omitempty"`

	// State echoes the CSRF state when the server is configured to return it.
	State *string `json:"state,omitempty"`
}

// Scope is a list of scope values. It is written as a JSON list and read from either
// a JSON list or the RFC 6749 §3.3 space delimited string form.
type Scope []string

func (s *Scope) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var delimited string
	if err := json.Unmarshal(data, &delimited); err != nil {
		return err
	}
	*s = strings.Fields(delimited)
	return nil
}

// String returns the space delimited form.
func (s Scope) String() string {
	return strings.Join(s, " ")
}
