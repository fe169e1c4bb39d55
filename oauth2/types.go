package oauth2

// ResponseType represents the OAuth 2.0 response type sent to the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType requests an authorization code.
	// Used in: Authorization Code Grant (RFC 6749 §4.1)
	// Example: /auth?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"

	// TokenResponseType requests a token directly from the authorization endpoint.
	// Used in: Implicit Grant (RFC 6749 §4.2), not implemented
	TokenResponseType ResponseType = "token"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for an access token.
	// Token request includes: code, client_id, redirect_uri, client_secret (confidential clients)
	AuthorizationCodeGrant GrantType = "authorization_code"

	// PasswordGrant is the resource owner password credentials grant. Not implemented.
	PasswordGrant GrantType = "password"

	// ClientCredentialsGrant is the two-legged machine to machine grant. Not implemented.
	ClientCredentialsGrant GrantType = "client_credentials"

	// RefreshTokenGrant exchanges a refresh token for a new access token. Not implemented.
	RefreshTokenGrant GrantType = "refresh_token"
)

// Supported reports whether the grant is implemented by this module.
func (g GrantType) Supported() bool {
	return g == AuthorizationCodeGrant
}

// AccessType selects which flow a client session runs.
type AccessType string

const (
	// GrantAccess is the Authorization Code Grant.
	GrantAccess AccessType = "grant"

	// ImplicitAccess is the Implicit Grant. It is an extension point and always rejected.
	ImplicitAccess AccessType = "implicit"
)

// TokenTypeBearer is the only token type issued (RFC 6750).
const TokenTypeBearer = "bearer"
