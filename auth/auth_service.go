// Package auth is a reference OAuth 2.0 authorization server for the Authorization Code
// Grant. It validates requests the way RFC 6749 §4.1 requires and answers with
// redirects and token responses. It keeps no per-request state, the authorization
// code is fixed by configuration.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-oauth2-client/clients"
	"github.com/jrsteele09/go-oauth2-client/oauthmodel"
	"github.com/jrsteele09/go-oauth2-client/token"
	"github.com/pkg/errors"
)

// Routes dispatched by AuthorizationService.Route.
const (
	PathAuth  = "/auth"
	PathToken = "/token"
)

// Defaults for the registered client and the issued grant.
const (
	DefaultClientID         = "someid@example.com"
	DefaultRedirectURI      = "https://localhost:8080/oauth/example"
	DefaultCode             = "MOCK_CODE"
	DefaultScopeDocsURI     = "https://docs.example.com/scopes"
	DefaultErrorRedirectURI = "https://example.com"
)

// DefaultAllowedScopes is the scope allow-list of the default client.
var DefaultAllowedScopes = []string{"api.example.com/user.profile", "api.example.com/add_item"}

// AuthorizationService validates authorization and token requests.
type AuthorizationService struct {
	clients             clients.Repo
	redirectURIRequired bool
	code                string
	injectedError       *oauthmodel.Error
	scopeDocsURI        string
	errorRedirectURI    string

	issuer     token.Issuer
	expiration *time.Duration
	tokenScope []string
	tokenState string
}

// settings collects options before the service is built.
type settings struct {
	service      *AuthorizationService
	clientID     string
	redirectURI  string
	clientSecret string
	scopes       []string
}

// AuthorizationServiceOption defines a function type to modify the AuthorizationService instance.
type AuthorizationServiceOption func(*settings)

// WithClients replaces the client registry. The default client options are then ignored.
func WithClients(repo clients.Repo) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.clients = repo
	}
}

// WithClientID sets the id of the default registered client.
func WithClientID(clientID string) AuthorizationServiceOption {
	return func(s *settings) {
		s.clientID = clientID
	}
}

// WithRedirectURI sets the redirect URI of the default registered client.
func WithRedirectURI(redirectURI string) AuthorizationServiceOption {
	return func(s *settings) {
		s.redirectURI = redirectURI
	}
}

// WithClientSecret makes the default registered client confidential.
func WithClientSecret(secret string) AuthorizationServiceOption {
	return func(s *settings) {
		s.clientSecret = secret
	}
}

// WithAllowedScopes sets the scope allow-list of the default registered client.
func WithAllowedScopes(scopes ...string) AuthorizationServiceOption {
	return func(s *settings) {
		s.scopes = append([]string(nil), scopes...)
	}
}

// RequireRedirectURI rejects authorization requests without a redirect_uri.
func RequireRedirectURI(required bool) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.redirectURIRequired = required
	}
}

// WithCode sets the authorization code handed out and expected back.
func WithCode(code string) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.code = code
	}
}

// WithError makes every authorization and token request fail with err.
func WithError(err *oauthmodel.Error) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.injectedError = err
	}
}

// WithExpiration sets expires_in on issued tokens.
func WithExpiration(expiration time.Duration) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.expiration = &expiration
	}
}

// WithTokenScope sets the scope list returned with issued tokens.
func WithTokenScope(scope ...string) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.tokenScope = append([]string(nil), scope...)
	}
}

// WithTokenState sets the state echoed with issued tokens, overriding the request state.
func WithTokenState(state string) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.tokenState = state
	}
}

// WithTokenIssuer replaces the static token issuer.
func WithTokenIssuer(issuer token.Issuer) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.issuer = issuer
	}
}

// WithScopeDocsURI sets the documentation URI referenced by invalid_scope errors.
func WithScopeDocsURI(uri string) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.scopeDocsURI = uri
	}
}

// WithErrorRedirectURI sets where failures are redirected when the request does not
// identify a registered client.
func WithErrorRedirectURI(uri string) AuthorizationServiceOption {
	return func(s *settings) {
		s.service.errorRedirectURI = uri
	}
}

// NewAuthorizationService builds the service. Without WithClients a registry holding
// one client, built from the default client options, is created.
func NewAuthorizationService(opts ...AuthorizationServiceOption) (*AuthorizationService, error) {
	s := &settings{
		service: &AuthorizationService{
			code:             DefaultCode,
			issuer:           token.StaticIssuer(token.MockAccessToken),
			scopeDocsURI:     DefaultScopeDocsURI,
			errorRedirectURI: DefaultErrorRedirectURI,
		},
		clientID:    DefaultClientID,
		redirectURI: DefaultRedirectURI,
		scopes:      append([]string(nil), DefaultAllowedScopes...),
	}
	for _, opt := range opts {
		opt(s)
	}

	as := s.service
	if u, err := url.Parse(as.errorRedirectURI); err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("error redirect uri %q must be absolute", as.errorRedirectURI)
	}

	if as.clients == nil {
		defaultClient := &clients.Client{
			ID:          s.clientID,
			RedirectURI: s.redirectURI,
			Scopes:      s.scopes,
		}
		if err := defaultClient.SetSecret(s.clientSecret); err != nil {
			return nil, errors.Wrap(err, "hash client secret")
		}
		as.clients = clients.NewInMemoryRepo(defaultClient)
	}
	return as, nil
}

// RouteResult is either a redirect for the user agent or a direct response.
type RouteResult struct {
	Redirect *oauthmodel.Request
	Response *oauthmodel.Response
}

func (r RouteResult) IsRedirect() bool {
	return r.Redirect != nil
}

// Route dispatches on the request path. Unknown paths get a server_error body with
// status 404.
func (as *AuthorizationService) Route(ctx context.Context, req oauthmodel.Request) RouteResult {
	switch req.Path() {
	case PathAuth:
		redirect := as.Authorize(ctx, req)
		return RouteResult{Redirect: &redirect}
	case PathToken:
		resp := as.Token(ctx, req)
		return RouteResult{Response: &resp}
	default:
		return RouteResult{Response: &oauthmodel.Response{
			Status: http.StatusNotFound,
			Body:   oauthmodel.Unknown(msgRouteNotFound).ResponseBody(""),
		}}
	}
}
