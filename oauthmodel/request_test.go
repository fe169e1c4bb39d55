package oauthmodel_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/go-oauth2-client/oauthmodel"
	"github.com/jrsteele09/go-oauth2-client/params"
	"github.com/stretchr/testify/require"
)

func TestNewRequestWithQuery(t *testing.T) {
	req, err := oauthmodel.NewRequestWithQuery("https://localhost:8080/oauth/example?keep=1", []params.Pair{
		{Key: "state", Value: "s"},
		{Key: "code", Value: "MOCK_CODE"},
	})
	require.NoError(t, err)
	require.Equal(t, "https://localhost:8080/oauth/example?keep=1&state=s&code=MOCK_CODE", req.String())
	require.Equal(t, "/oauth/example", req.Path())
}

func TestRequest_Params(t *testing.T) {
	u, _ := url.Parse("http://localhost/token?state=abc")
	req := oauthmodel.Request{URL: u, Body: "code=c&grant_type=authorization_code&state=def"}

	qp, err := req.Params()
	require.NoError(t, err)
	code, ok := qp.Single("code")
	require.True(t, ok)
	require.Equal(t, "c", code)

	state, _ := qp.Get("state")
	values, ok := state.Multi()
	require.True(t, ok)
	require.Equal(t, []string{"abc", "def"}, values)

	_, err = oauthmodel.Request{URL: u, Body: "%zz"}.Params()
	require.Error(t, err)

	empty, err := oauthmodel.Request{}.Params()
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())
}
