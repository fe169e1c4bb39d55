package main

import (
	"context"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-oauth2-client/auth"
	"github.com/jrsteele09/go-oauth2-client/internal/config"
	"github.com/jrsteele09/go-oauth2-client/oauthmodel"
	"github.com/jrsteele09/go-oauth2-client/params"
	"github.com/stretchr/testify/require"
)

func TestAuthOptions(t *testing.T) {
	t.Setenv("CLIENT_ID", "foobar@example.com")
	t.Setenv("REDIRECT_URI", "http://localhost/cb")
	t.Setenv("TOKEN_SIGNING_KEY", "key")

	opts, err := authOptions(config.New())
	require.NoError(t, err)
	service, err := auth.NewAuthorizationService(opts...)
	require.NoError(t, err)

	u, err := url.Parse("http://localhost" + auth.PathAuth + "?client_id=foobar%40example.com&state=s")
	require.NoError(t, err)
	redirect := service.Authorize(context.Background(), oauthmodel.Request{URL: u})
	qp := params.FromURL(redirect.URL)
	code, ok := qp.Single("code")
	require.True(t, ok)
	require.Equal(t, "MOCK_CODE", code)
}
