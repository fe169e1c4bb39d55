package oauthmodel_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-oauth2-client/oauthmodel"
	"github.com/jrsteele09/go-oauth2-client/params"
	"github.com/stretchr/testify/require"
)

func TestError_Codes(t *testing.T) {
	tests := []struct {
		err  *oauthmodel.Error
		code string
	}{
		{oauthmodel.InvalidRequest("", ""), "invalid_request"},
		{oauthmodel.InvalidClient("", ""), "invalid_client"},
		{oauthmodel.InvalidGrant("", ""), "invalid_grant"},
		{oauthmodel.UnauthorizedClient("", ""), "unauthorized_client"},
		{oauthmodel.UnsupportedGrantType("", ""), "unsupported_grant_type"},
		{oauthmodel.InvalidScope("", ""), "invalid_scope"},
		{oauthmodel.Unknown("boom"), "server_error"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			require.Equal(t, tt.code, string(tt.err.Code))
			require.Equal(t, tt.code, tt.err.RedirectParams("")[0].Value)
		})
	}
}

func TestError_RedirectParams(t *testing.T) {
	t.Run("absent fields are omitted", func(t *testing.T) {
		pairs := oauthmodel.InvalidRequest("", "").RedirectParams("")
		require.Equal(t, []params.Pair{{Key: "error", Value: "invalid_request"}}, pairs)
	})

	t.Run("all fields in order", func(t *testing.T) {
		pairs := oauthmodel.InvalidScope("bad scope", "https://docs.example.com/scopes?invalid_scope=x").RedirectParams("st")
		require.Equal(t, []params.Pair{
			{Key: "error", Value: "invalid_scope"},
			{Key: "error_description", Value: "bad scope"},
			{Key: "error_uri", Value: "https://docs.example.com/scopes?invalid_scope=x"},
			{Key: "state", Value: "st"},
		}, pairs)
	})
}

func TestError_ResponseBody(t *testing.T) {
	require.JSONEq(t, `{"error":"server_error","error_description":"404: Route not found"}`,
		oauthmodel.Unknown("404: Route not found").ResponseBody(""))
	require.JSONEq(t, `{"error":"invalid_client","state":"abc"}`,
		oauthmodel.InvalidClient("", "").ResponseBody("abc"))
}

func TestError_HTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusUnauthorized, oauthmodel.InvalidClient("", "").HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, oauthmodel.Unknown("x").HTTPStatus())
	require.Equal(t, http.StatusBadRequest, oauthmodel.InvalidGrant("", "").HTTPStatus())
}

func TestError_Is(t *testing.T) {
	cause := errors.New("not found")
	err := oauthmodel.InvalidGrant("Unknown state", "").Wrap(cause)

	require.ErrorIs(t, err, oauthmodel.ErrInvalidGrant)
	require.ErrorIs(t, err, cause)
	require.False(t, errors.Is(err, oauthmodel.ErrInvalidRequest))
}

func TestAsError(t *testing.T) {
	require.Nil(t, oauthmodel.AsError(nil))

	typed := oauthmodel.InvalidRequest("x", "")
	require.Same(t, typed, oauthmodel.AsError(typed))

	foreign := errors.New("lock failure")
	coerced := oauthmodel.AsError(foreign)
	require.Equal(t, oauthmodel.ErrorCodeServerError, coerced.Code)
	require.Equal(t, "lock failure", coerced.Description)
	require.ErrorIs(t, coerced, foreign)
}

func TestErrorFromParams(t *testing.T) {
	t.Run("no error param", func(t *testing.T) {
		_, ok := oauthmodel.ErrorFromParams(params.FromPairs([]params.Pair{{Key: "code", Value: "c"}}))
		require.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		orig := oauthmodel.UnauthorizedClient("Unauthorized: Client Not Authorized", "")
		decoded, ok := oauthmodel.ErrorFromParams(params.FromPairs(orig.RedirectParams("s")))
		require.True(t, ok)
		require.Equal(t, orig.Code, decoded.Code)
		require.Equal(t, orig.Description, decoded.Description)
	})

	t.Run("unrecognised code", func(t *testing.T) {
		decoded, ok := oauthmodel.ErrorFromParams(params.FromPairs([]params.Pair{{Key: "error", Value: "access_denied"}}))
		require.True(t, ok)
		require.Equal(t, oauthmodel.ErrorCodeServerError, decoded.Code)
		require.Contains(t, decoded.Description, "access_denied")
	})
}

func TestParseErrorResponse(t *testing.T) {
	decoded, ok := oauthmodel.ParseErrorResponse([]byte(`{"error":"invalid_grant","error_description":"bad code"}`))
	require.True(t, ok)
	require.Equal(t, oauthmodel.ErrorCodeInvalidGrant, decoded.Code)
	require.Equal(t, "bad code", decoded.Description)

	_, ok = oauthmodel.ParseErrorResponse([]byte(`{"access_token":"a"}`))
	require.False(t, ok)
	_, ok = oauthmodel.ParseErrorResponse([]byte(`not json`))
	require.False(t, ok)
}
