// Package client drives the client side of the OAuth 2.0 Authorization Code Grant
// (RFC 6749 §4.1).
//
// A Client moves through these steps:
//
//	GetUserAuthRequest    -> send the user agent to the authorization endpoint
//	HandleAuthRedirect    -> consume the state and pick up the code
//	GetAccessTokenRequest -> build the token request
//	HandleTokenResponse   -> attach the access token
//
// Client values are immutable, every With* method and step returns a modified copy.
package client

import (
	"github.com/google/uuid"
	"github.com/jrsteele09/go-oauth2-client/oauth2"
	"github.com/jrsteele09/go-oauth2-client/storage"
)

// Store holds pending clients keyed by their CSRF state.
type Store = storage.Store[Client]

// Client is one authorization attempt. The whole value is what gets persisted under
// its State while the user agent is away at the authorization server.
type Client struct {
	Auth        Authenticator     `json:"auth"`
	Scope       []string          `json:"scope,omitempty"`
	RedirectURI string            `json:"redirect_uri"`
	AccessType  oauth2.AccessType `json:"access_type"`
	State       string            `json:"state,omitempty"`
	Code        string            `json:"code,omitempty"`
	Token       *Token            `json:"token,omitempty"`
}

// New creates a Grant client with no state attached.
func New(auth Authenticator, redirectURI string, scope ...string) Client {
	return Client{
		Auth:        auth,
		Scope:       append([]string(nil), scope...),
		RedirectURI: redirectURI,
		AccessType:  oauth2.GrantAccess,
	}
}

// NewState returns a random CSRF state token.
func NewState() string {
	return uuid.NewString()
}

func (c Client) WithAuth(auth Authenticator) Client {
	c = c.Clone()
	c.Auth = auth
	return c
}

func (c Client) WithScope(scope ...string) Client {
	c = c.Clone()
	c.Scope = append([]string(nil), scope...)
	return c
}

func (c Client) WithRedirectURI(redirectURI string) Client {
	c = c.Clone()
	c.RedirectURI = redirectURI
	return c
}

func (c Client) WithAccessType(accessType oauth2.AccessType) Client {
	c = c.Clone()
	c.AccessType = accessType
	return c
}

func (c Client) WithState(state string) Client {
	c = c.Clone()
	c.State = state
	return c
}

// WithNewState attaches a fresh random state.
func (c Client) WithNewState() Client {
	return c.WithState(NewState())
}

func (c Client) WithCode(code string) Client {
	c = c.Clone()
	c.Code = code
	return c
}

func (c Client) WithToken(token Token) Client {
	c = c.Clone()
	c.Token = &token
	return c
}

// Clone deep copies c so stored snapshots never share slices with callers.
func (c Client) Clone() Client {
	if c.Scope != nil {
		c.Scope = append([]string(nil), c.Scope...)
	}
	if c.Token != nil {
		t := c.Token.clone()
		c.Token = &t
	}
	return c
}
