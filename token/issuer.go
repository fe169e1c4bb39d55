// Package token issues the access tokens returned by the reference authorization server.
package token

import "time"

// MockAccessToken is the fixed token handed out by StaticIssuer by default.
const MockAccessToken = "TU9DS19UT0tFTg=="

// Grant describes what an access token is being issued for.
type Grant struct {
	ClientID  string
	Scope     []string
	ExpiresIn time.Duration
}

// Issuer creates access tokens for granted codes.
type Issuer interface {
	Issue(grant Grant) (string, error)
}

// StaticIssuer always issues the same opaque token.
type StaticIssuer string

func (s StaticIssuer) Issue(Grant) (string, error) {
	if s == "" {
		return MockAccessToken, nil
	}
	return string(s), nil
}
