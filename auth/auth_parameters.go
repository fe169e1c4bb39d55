package auth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jrsteele09/go-oauth2-client/clients"
	interrors "github.com/jrsteele09/go-oauth2-client/internal/errors"
	"github.com/jrsteele09/go-oauth2-client/internal/utils"
	"github.com/jrsteele09/go-oauth2-client/oauth2"
	"github.com/jrsteele09/go-oauth2-client/oauthmodel"
	"github.com/jrsteele09/go-oauth2-client/params"
	"github.com/rs/zerolog/log"
)

// AuthorizationParameters holds the validated parameters of an authorization request.
type AuthorizationParameters struct {
	// ClientID identifies the application requesting authorization.
	// Required: Yes
	// Validated against: the client registry
	ClientID string

	// RedirectURI is where the authorization response is sent.
	// Required: Only when the server is configured with RequireRedirectURI
	// Security: Must exactly match the registered URI to prevent open redirects
	RedirectURI string

	// Scope is every requested scope, whether sent space delimited or as repeated keys.
	// Validated against: the registered client's allowed scopes
	Scope []string

	// State is the client's CSRF token, echoed back on every redirect.
	// Required: Yes
	State string
}

// Authorize validates an authorization request (RFC 6749 §4.1.1) and returns where the
// user agent is sent next. Failures are redirects carrying the error parameters, never
// a direct rejection.
func (as *AuthorizationService) Authorize(ctx context.Context, req oauthmodel.Request) oauthmodel.Request {
	qp, err := req.Params()
	if err != nil {
		return as.errorRedirect(nil, oauthmodel.InvalidRequest(msgMalformedRequest, "").Wrap(err), "")
	}
	state, _ := qp.Single(oauthmodel.ParamState)

	if as.injectedError != nil {
		client, _ := as.lookupClient(ctx, qp)
		return as.errorRedirect(client, as.injectedError, state)
	}

	authParams, client, err := as.parseAuthorizationParameters(ctx, qp)
	if err != nil {
		if client == nil {
			client, _ = as.lookupClient(ctx, qp)
		}
		return as.errorRedirect(client, oauthmodel.AsError(err), state)
	}

	redirect, err := oauthmodel.NewRequestWithQuery(client.RedirectURI, []params.Pair{
		{Key: oauthmodel.ParamState, Value: authParams.State},
		{Key: oauthmodel.ParamCode, Value: as.code},
	})
	if err != nil {
		return as.errorRedirect(nil, oauthmodel.Unknown("Registered redirect uri is invalid").Wrap(err), state)
	}
	return redirect
}

// parseAuthorizationParameters runs the checks in order: state, client_id, redirect_uri,
// response_type, scope. The registered client is returned as soon as it is known so
// later failures can be redirected to it.
func (as *AuthorizationService) parseAuthorizationParameters(ctx context.Context, qp params.QueryParams) (*AuthorizationParameters, *clients.Client, error) {
	state, err := requireSingle(qp, oauthmodel.ParamState, msgMissingState)
	if err != nil {
		return nil, nil, err
	}

	clientID, err := requireSingle(qp, oauthmodel.ParamClientID, msgMissingClientID)
	if err != nil {
		return nil, nil, err
	}
	client, err := as.clients.Get(ctx, clientID)
	if interrors.Is(err, clients.ErrClientNotFound) {
		return nil, nil, oauthmodel.UnauthorizedClient(msgClientNotAuthed, "")
	}
	if err != nil {
		return nil, nil, oauthmodel.AsError(interrors.Wrapf(err, "lookup client"))
	}

	redirectURI, err := as.validateRedirectURI(qp, client)
	if err != nil {
		return nil, client, err
	}

	if v, ok := qp.Get(oauthmodel.ParamResponseType); ok {
		rt, single := v.Single()
		if !single {
			return nil, client, oauthmodel.InvalidRequest(msgMultipleValues, "")
		}
		if oauth2.ResponseType(rt) != oauth2.CodeResponseType {
			return nil, client, oauthmodel.InvalidRequest(msgUnsupportedType, "")
		}
	}

	var scope []string
	if v, ok := qp.Get(oauthmodel.ParamScope); ok {
		scope = utils.SplitFields(v.Values())
	}
	if bad, err := client.ValidateScopes(scope); err != nil {
		uri := fmt.Sprintf("%s?invalid_scope=%s", as.scopeDocsURI, url.QueryEscape(bad))
		return nil, client, oauthmodel.InvalidScope("", uri).Wrap(err)
	}

	return &AuthorizationParameters{
		ClientID:    clientID,
		RedirectURI: redirectURI,
		Scope:       scope,
		State:       state,
	}, client, nil
}

func (as *AuthorizationService) validateRedirectURI(qp params.QueryParams, client *clients.Client) (string, error) {
	v, ok := qp.Get(oauthmodel.ParamRedirectURI)
	if !ok {
		if as.redirectURIRequired {
			return "", oauthmodel.InvalidRequest(msgMissingRedirectURI, "")
		}
		return client.RedirectURI, nil
	}
	redirectURI, single := v.Single()
	if !single {
		return "", oauthmodel.InvalidRequest(msgMultipleValues, "")
	}
	if redirectURI != client.RedirectURI {
		return "", oauthmodel.InvalidRequest(msgRedirectMismatch, "")
	}
	return redirectURI, nil
}

// lookupClient finds the registered client named by a single client_id, if any.
func (as *AuthorizationService) lookupClient(ctx context.Context, qp params.QueryParams) (*clients.Client, error) {
	clientID, ok := qp.Single(oauthmodel.ParamClientID)
	if !ok || clientID == "" {
		return nil, clients.ErrClientNotFound
	}
	return as.clients.Get(ctx, clientID)
}

// errorRedirect sends the error to the registered client's redirect URI, or to the
// fallback when the client is unknown. Redirecting to an unvalidated redirect_uri
// would make the server an open redirector.
func (as *AuthorizationService) errorRedirect(client *clients.Client, oauthErr *oauthmodel.Error, state string) oauthmodel.Request {
	log.Debug().
		Str("error", string(oauthErr.Code)).
		Str("description", oauthErr.Description).
		Msg("authorization request rejected")

	pairs := oauthErr.RedirectParams(state)
	if client != nil {
		if redirect, err := oauthmodel.NewRequestWithQuery(client.RedirectURI, pairs); err == nil {
			return redirect
		}
	}
	redirect, err := oauthmodel.NewRequestWithQuery(as.errorRedirectURI, pairs)
	if err != nil {
		// errorRedirectURI is validated by NewAuthorizationService
		log.Err(err).Msg("fallback error redirect uri is invalid")
	}
	return redirect
}

func requireSingle(qp params.QueryParams, name, missing string) (string, error) {
	v, ok := qp.Get(name)
	if !ok {
		return "", oauthmodel.InvalidRequest(missing, "")
	}
	s, single := v.Single()
	if !single {
		return "", oauthmodel.InvalidRequest(msgMultipleValues, "")
	}
	if s == "" {
		return "", oauthmodel.InvalidRequest(missing, "")
	}
	return s, nil
}
