package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/go-oauth2-client/clients"
	interrors "github.com/jrsteele09/go-oauth2-client/internal/errors"
	"github.com/jrsteele09/go-oauth2-client/internal/utils"
	"github.com/jrsteele09/go-oauth2-client/oauth2"
	"github.com/jrsteele09/go-oauth2-client/oauthmodel"
	"github.com/jrsteele09/go-oauth2-client/params"
	"github.com/jrsteele09/go-oauth2-client/token"
	"github.com/rs/zerolog/log"
)

// defaultIssuedLifetime is the lifetime handed to the issuer when no expiration is
// configured. expires_in is only sent when WithExpiration is used.
const defaultIssuedLifetime = time.Hour

// Token answers a token request (RFC 6749 §4.1.3). client_id and code are required,
// other parameters that are present must be correct. The response body is either a token or a JSON error.
func (as *AuthorizationService) Token(ctx context.Context, req oauthmodel.Request) oauthmodel.Response {
	if as.injectedError != nil {
		return errorResponse(as.injectedError)
	}

	qp, err := req.Params()
	if err != nil {
		return errorResponse(oauthmodel.InvalidRequest(msgMalformedRequest, "").Wrap(err))
	}

	clientID, err := as.validateTokenRequest(ctx, qp)
	if err != nil {
		return errorResponse(oauthmodel.AsError(err))
	}

	lifetime := defaultIssuedLifetime
	if as.expiration != nil {
		lifetime = *as.expiration
	}
	accessToken, err := as.issuer.Issue(token.Grant{
		ClientID:  clientID,
		Scope:     as.tokenScope,
		ExpiresIn: lifetime,
	})
	if err != nil {
		log.Err(err).Msg("failed to issue access token")
		return errorResponse(oauthmodel.Unknown("Failed to issue access token").Wrap(err))
	}

	tr := oauth2.TokenResponse{
		AccessToken: accessToken,
		TokenType:   oauth2.TokenTypeBearer,
		Scope:       as.tokenScope,
	}
	if as.expiration != nil {
		tr.ExpiresIn = utils.Ptr(int64(as.expiration.Seconds()))
	}
	if as.tokenState != "" {
		tr.State = utils.Ptr(as.tokenState)
	} else if state, ok := qp.Single(oauthmodel.ParamState); ok && state != "" {
		tr.State = utils.Ptr(state)
	}

	body, err := json.Marshal(tr)
	if err != nil {
		return errorResponse(oauthmodel.Unknown("Failed to encode token response").Wrap(err))
	}
	return oauthmodel.Response{Status: http.StatusOK, Body: string(body)}
}

// validateTokenRequest checks grant_type, client_id, client_secret, code and
// redirect_uri. client_id and code are required and the named client always has its
// secret verified. Optional parameters that are present must be correct. It returns
// the client id the token is issued to.
func (as *AuthorizationService) validateTokenRequest(ctx context.Context, qp params.QueryParams) (string, error) {
	if v, ok := qp.Get(oauthmodel.ParamGrantType); ok {
		gt, single := v.Single()
		if !single {
			return "", oauthmodel.InvalidRequest(msgMultipleValues, "")
		}
		if !oauth2.GrantType(gt).Supported() {
			return "", oauthmodel.UnsupportedGrantType(msgUnsupportedGrant, "")
		}
	}

	clientID, err := requireSingle(qp, oauthmodel.ParamClientID, msgMissingClientID)
	if err != nil {
		return "", err
	}
	client, err := as.clients.Get(ctx, clientID)
	if interrors.Is(err, clients.ErrClientNotFound) {
		return "", oauthmodel.InvalidClient(msgUnknownClient, "")
	}
	if err != nil {
		return "", oauthmodel.AsError(interrors.Wrapf(err, "lookup client"))
	}

	secret, err := optionalSingle(qp, oauthmodel.ParamClientSecret)
	if err != nil {
		return "", err
	}
	if !client.VerifySecret(secret) {
		return "", oauthmodel.InvalidClient(msgBadSecret, "")
	}

	code, err := requireSingle(qp, oauthmodel.ParamCode, msgMissingCode)
	if err != nil {
		return "", err
	}
	if code != as.code {
		return "", oauthmodel.InvalidGrant(msgInvalidCode, "")
	}

	redirectURI, err := optionalSingle(qp, oauthmodel.ParamRedirectURI)
	if err != nil {
		return "", err
	}
	if redirectURI != "" && redirectURI != client.RedirectURI {
		return "", oauthmodel.InvalidGrant(msgTokenRedirect, "")
	}

	return clientID, nil
}

func optionalSingle(qp params.QueryParams, name string) (string, error) {
	v, ok := qp.Get(name)
	if !ok {
		return "", nil
	}
	s, single := v.Single()
	if !single {
		return "", oauthmodel.InvalidRequest(msgMultipleValues, "")
	}
	return s, nil
}

func errorResponse(err *oauthmodel.Error) oauthmodel.Response {
	log.Debug().Str("error", string(err.Code)).Str("description", err.Description).Msg("token request rejected")
	return oauthmodel.Response{
		Status: err.HTTPStatus(),
		Body:   err.ResponseBody(""),
	}
}
