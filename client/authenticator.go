package client

import (
	"net/url"

	interrors "github.com/jrsteele09/go-oauth2-client/internal/errors"
	xoauth2 "golang.org/x/oauth2"
)

// Authenticator is the client identity registered with the authorization server.
type Authenticator struct {
	ClientID string `json:"client_id"`
	// ClientSecret is optional. It is only ever sent to the token endpoint.
	ClientSecret string `json:"client_secret,omitempty"`
	AuthURI      string `json:"auth_uri"`
	TokenURI     string `json:"token_uri"`
}

// NewAuthenticator validates that both endpoints are absolute URLs.
func NewAuthenticator(clientID, authURI, tokenURI string) (Authenticator, error) {
	for _, raw := range []string{authURI, tokenURI} {
		u, err := url.Parse(raw)
		if err != nil {
			return Authenticator{}, interrors.Wrapf(err, "parse %q", raw)
		}
		if !u.IsAbs() || u.Host == "" {
			return Authenticator{}, interrors.Wrapf(interrors.ErrInvalidURI, "%q", raw)
		}
	}
	return Authenticator{ClientID: clientID, AuthURI: authURI, TokenURI: tokenURI}, nil
}

// DefaultAuthenticator is a public client against a server on localhost.
func DefaultAuthenticator() Authenticator {
	return Authenticator{
		ClientID: "foobar@example.com",
		AuthURI:  "http://localhost/auth",
		TokenURI: "http://localhost/token",
	}
}

func (a Authenticator) WithSecret(secret string) Authenticator {
	a.ClientSecret = secret
	return a
}

func (a Authenticator) WithNoSecret() Authenticator {
	a.ClientSecret = ""
	return a
}

// Endpoint describes the server endpoints for golang.org/x/oauth2. Credentials are
// sent in the form body, which is how GetAccessTokenRequest sends them.
func (a Authenticator) Endpoint() xoauth2.Endpoint {
	return xoauth2.Endpoint{
		AuthURL:   a.AuthURI,
		TokenURL:  a.TokenURI,
		AuthStyle: xoauth2.AuthStyleInParams,
	}
}
