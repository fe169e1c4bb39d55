package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	interrors "github.com/jrsteele09/go-oauth2-client/internal/errors"
	"github.com/jrsteele09/go-oauth2-client/oauth2"
	"github.com/jrsteele09/go-oauth2-client/oauthmodel"
	"github.com/jrsteele09/go-oauth2-client/params"
	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
)

const (
	msgMissingState   = "Bad Request: Missing `state`"
	msgMultipleValues = "Bad Request: Expected Single Parameter, found many"
	msgMissingCode    = "Requires a code to authorize token"
	msgUnknownState   = "Unknown or already used `state`"
)

// GetUserAuthRequest builds the authorization request (RFC 6749 §4.1.1).
//
// When a state is attached the client is persisted under it before the request is
// returned. Without a state the store is never touched and may be nil.
func (c Client) GetUserAuthRequest(ctx context.Context, store Store) (oauthmodel.Request, error) {
	if c.AccessType == oauth2.ImplicitAccess {
		return oauthmodel.Request{}, oauthmodel.UnsupportedGrantType("Implicit grant is not supported", "")
	}

	pairs := []params.Pair{
		{Key: oauthmodel.ParamResponseType, Value: string(oauth2.CodeResponseType)},
		{Key: oauthmodel.ParamClientID, Value: c.Auth.ClientID},
	}
	// redirect_uri is OPTIONAL (RFC 6749 §4.1.1); an empty one would never match the registration
	if c.RedirectURI != "" {
		pairs = append(pairs, params.Pair{Key: oauthmodel.ParamRedirectURI, Value: c.RedirectURI})
	}
	if len(c.Scope) > 0 {
		pairs = append(pairs, params.Pair{Key: oauthmodel.ParamScope, Value: strings.Join(c.Scope, " ")})
	}
	if c.State != "" {
		pairs = append(pairs, params.Pair{Key: oauthmodel.ParamState, Value: c.State})
	}

	req, err := oauthmodel.NewRequestWithQuery(c.Auth.AuthURI, pairs)
	if err != nil {
		return oauthmodel.Request{}, oauthmodel.Unknown("Invalid auth_uri").Wrap(err)
	}

	if c.State == "" {
		return req, nil
	}
	if store == nil {
		return oauthmodel.Request{}, oauthmodel.Unknown("A state store is required when state is set")
	}
	if _, _, err := store.Set(ctx, c.State, c); err != nil {
		log.Err(err).Str("client_id", c.Auth.ClientID).Msg("failed to persist pending authorization")
		return oauthmodel.Request{}, oauthmodel.AsError(interrors.Wrapf(err, "persist state"))
	}
	log.Debug().Str("client_id", c.Auth.ClientID).Msg("pending authorization persisted")
	return req, nil
}

// HandleAuthRedirect consumes the authorization redirect (RFC 6749 §4.1.2) and returns
// the persisted client with the code attached.
//
// The state is dropped from the store, so replaying the same redirect fails with
// InvalidGrant wrapping storage.ErrNotFound. An error redirect also consumes the state
// and is returned as the decoded error.
func HandleAuthRedirect(ctx context.Context, req oauthmodel.Request, store Store) (Client, error) {
	qp, err := req.Params()
	if err != nil {
		return Client{}, oauthmodel.InvalidRequest("Malformed redirect query", "").Wrap(err)
	}

	if redirectErr, ok := oauthmodel.ErrorFromParams(qp); ok {
		if state, single := qp.Single(oauthmodel.ParamState); single && state != "" && store != nil {
			if _, err := store.Drop(ctx, state); err != nil && !interrors.Is(err, interrors.ErrNotFound) {
				log.Err(err).Str("redirect_error", string(redirectErr.Code)).Msg("failed to drop state of error redirect")
			}
		}
		return Client{}, redirectErr
	}

	if err := checkGrantType(qp); err != nil {
		return Client{}, err
	}

	state, err := singleParam(qp, oauthmodel.ParamState, msgMissingState)
	if err != nil {
		return Client{}, err
	}
	if store == nil {
		return Client{}, oauthmodel.Unknown("A state store is required to handle redirects")
	}

	c, err := store.Drop(ctx, state)
	if interrors.Is(err, interrors.ErrNotFound) {
		log.Debug().Msg("redirect with unknown or replayed state")
		return Client{}, oauthmodel.InvalidGrant(msgUnknownState, "").Wrap(err)
	}
	if err != nil {
		return Client{}, oauthmodel.AsError(interrors.Wrapf(err, "drop state"))
	}

	code, err := singleParam(qp, oauthmodel.ParamCode, msgMissingCode)
	if err != nil {
		return Client{}, err
	}
	log.Debug().Str("client_id", c.Auth.ClientID).Msg("authorization code received")
	return c.WithCode(code), nil
}

// A redirect normally carries only code and state, so an absent grant_type means the
// authorization code grant.
func checkGrantType(qp params.QueryParams) error {
	v, ok := qp.Get(oauthmodel.ParamGrantType)
	if !ok {
		return nil
	}
	gt, single := v.Single()
	if !single {
		return oauthmodel.InvalidRequest(msgMultipleValues, "")
	}
	if !oauth2.GrantType(gt).Supported() {
		return oauthmodel.InvalidRequest(fmt.Sprintf("Bad Request: Unsupported grant_type `%s`", gt), "")
	}
	return nil
}

func singleParam(qp params.QueryParams, name, missing string) (string, error) {
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

// GetAccessTokenRequest builds the token request (RFC 6749 §4.1.3). The parameters are
// form encoded in the body and the client secret is only included when set.
func (c Client) GetAccessTokenRequest() (oauthmodel.Request, error) {
	if c.Code == "" {
		return oauthmodel.Request{}, oauthmodel.InvalidRequest(msgMissingCode, "")
	}

	u, err := url.Parse(c.Auth.TokenURI)
	if err != nil {
		return oauthmodel.Request{}, oauthmodel.Unknown("Invalid token_uri").Wrap(err)
	}

	pairs := []params.Pair{
		{Key: oauthmodel.ParamCode, Value: c.Code},
		{Key: oauthmodel.ParamGrantType, Value: string(oauth2.AuthorizationCodeGrant)},
		{Key: oauthmodel.ParamClientID, Value: c.Auth.ClientID},
		{Key: oauthmodel.ParamRedirectURI, Value: c.RedirectURI},
	}
	if c.Auth.ClientSecret != "" {
		pairs = append(pairs, params.Pair{Key: oauthmodel.ParamClientSecret, Value: c.Auth.ClientSecret})
	}

	return oauthmodel.Request{
		Method: http.MethodPost,
		URL:    u,
		Body:   params.EncodePairs(pairs),
	}, nil
}

// HandleTokenResponse parses the token response (RFC 6749 §4.1.4) and returns the
// client with the token attached. The state was already consumed by
// HandleAuthRedirect so the store is not involved.
func (c Client) HandleTokenResponse(resp oauthmodel.Response) (Client, error) {
	body := []byte(resp.Body)
	if tokenErr, ok := oauthmodel.ParseErrorResponse(body); ok {
		return Client{}, tokenErr
	}
	if resp.Status >= http.StatusBadRequest {
		return Client{}, oauthmodel.Unknown(fmt.Sprintf("Token endpoint returned status %d", resp.Status))
	}

	var tr oauth2.TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return Client{}, oauthmodel.Unknown("Invalid token response").Wrap(err)
	}
	if tr.AccessToken == "" || tr.TokenType == "" {
		return Client{}, oauthmodel.Unknown("Token response is missing access_token or token_type")
	}
	if tr.State != nil && c.State != "" && *tr.State != c.State {
		return Client{}, oauthmodel.InvalidGrant("Token response `state` does not match", "")
	}

	log.Debug().Str("client_id", c.Auth.ClientID).Str("token_type", tr.TokenType).Msg("access token received")
	return c.WithToken(newToken(tr)), nil
}

// Exchange sends the token request through transport and handles the response.
func (c Client) Exchange(ctx context.Context, transport Transport) (Client, error) {
	req, err := c.GetAccessTokenRequest()
	if err != nil {
		return Client{}, err
	}
	resp, err := transport.Do(ctx, req)
	if err != nil {
		return Client{}, oauthmodel.AsError(err)
	}
	return c.HandleTokenResponse(resp)
}

// TokenSource returns a static golang.org/x/oauth2 token source for the attached token.
func (c Client) TokenSource() (xoauth2.TokenSource, error) {
	if c.Token == nil {
		return nil, oauthmodel.InvalidRequest("No access token attached", "")
	}
	return xoauth2.StaticTokenSource(c.Token.OAuth2()), nil
}
