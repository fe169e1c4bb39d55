package client

import (
	"time"

	"github.com/jrsteele09/go-oauth2-client/internal/utils"
	"github.com/jrsteele09/go-oauth2-client/oauth2"
	xoauth2 "golang.org/x/oauth2"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Token is the access token record attached once the token response is handled.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   *int64    `json:"expires_in,omitempty"`
	Scope       []string  `json:"scope,omitempty"`
	State       string    `json:"state,omitempty"`
	ReceivedAt  time.Time `json:"received_at"`
}

func newToken(tr oauth2.TokenResponse) Token {
	return Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
		ExpiresIn:   tr.ExpiresIn,
		Scope:       append([]string(nil), tr.Scope...),
		State:       utils.Value(tr.State),
		ReceivedAt:  NowTimeFunc(),
	}
}

// Expiry is the zero time when the server did not send expires_in.
func (t Token) Expiry() time.Time {
	if t.ExpiresIn == nil {
		return time.Time{}
	}
	return t.ReceivedAt.Add(time.Duration(*t.ExpiresIn) * time.Second)
}

// OAuth2 converts to the golang.org/x/oauth2 token so it can be used with
// oauth2.NewClient and friends.
func (t Token) OAuth2() *xoauth2.Token {
	tok := &xoauth2.Token{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		Expiry:      t.Expiry(),
	}
	if t.ExpiresIn != nil {
		tok.ExpiresIn = *t.ExpiresIn
	}
	return tok
}

func (t Token) clone() Token {
	if t.ExpiresIn != nil {
		t.ExpiresIn = utils.Ptr(*t.ExpiresIn)
	}
	if t.Scope != nil {
		t.Scope = append([]string(nil), t.Scope...)
	}
	return t
}
