package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-oauth2-client/auth"
	"github.com/jrsteele09/go-oauth2-client/internal/config"
	"github.com/jrsteele09/go-oauth2-client/server"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, opts ...auth.AuthorizationServiceOption) *httptest.Server {
	t.Helper()
	service, err := auth.NewAuthorizationService(opts...)
	require.NoError(t, err)
	ts := httptest.NewServer(server.New(config.New(), service))
	t.Cleanup(ts.Close)
	return ts
}

func noRedirectClient() *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestAuthorizeHandler(t *testing.T) {
	ts := setupTestServer(t)
	c := noRedirectClient()

	t.Run("success redirect", func(t *testing.T) {
		q := url.Values{
			"response_type": {"code"},
			"client_id":     {auth.DefaultClientID},
			"redirect_uri":  {auth.DefaultRedirectURI},
			"state":         {"abc"},
		}
		resp, err := c.Get(ts.URL + server.RouteAuthorize + "?" + q.Encode())
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode)
		loc, err := url.Parse(resp.Header.Get("Location"))
		require.NoError(t, err)
		require.Equal(t, "localhost:8080", loc.Host)
		require.Equal(t, "abc", loc.Query().Get("state"))
		require.Equal(t, auth.DefaultCode, loc.Query().Get("code"))
	})

	t.Run("error redirect", func(t *testing.T) {
		q := url.Values{"client_id": {"example.com"}, "state": {"abc"}}
		resp, err := c.Get(ts.URL + server.RouteAuthorize + "?" + q.Encode())
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode)
		loc, err := url.Parse(resp.Header.Get("Location"))
		require.NoError(t, err)
		require.Equal(t, "unauthorized_client", loc.Query().Get("error"))
		require.Equal(t, "Unauthorized: Client Not Authorized", loc.Query().Get("error_description"))
	})
}

func TestTokenHandler(t *testing.T) {
	ts := setupTestServer(t, auth.WithExpiration(time.Hour), auth.WithTokenScope("user.foo", "user.profile"))

	t.Run("token", func(t *testing.T) {
		form := url.Values{"grant_type": {"authorization_code"}, "code": {auth.DefaultCode}, "client_id": {auth.DefaultClientID}}
		resp, err := http.PostForm(ts.URL+server.RouteToken, form)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
		require.Contains(t, resp.Header.Get("Content-Type"), "application/json")

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "TU9DS19UT0tFTg==", body["access_token"])
		require.Equal(t, "bearer", body["token_type"])
		require.Equal(t, float64(3600), body["expires_in"])
	})

	t.Run("error", func(t *testing.T) {
		resp, err := http.PostForm(ts.URL+server.RouteToken, url.Values{"client_id": {"nobody"}})
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"error":"invalid_client","error_description":"Unknown `+"`client_id`"+`"}`, string(b))
	})
}

func TestNotFound(t *testing.T) {
	ts := setupTestServer(t)
	resp, err := http.Get(ts.URL + "/nowhere")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"error":"server_error","error_description":"404: Route not found"}`, string(b))
}

func TestCorsPreflight(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://app.example.com")
	ts := setupTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+server.RouteToken, strings.NewReader(""))
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestTokenPreflightWithoutOrigin(t *testing.T) {
	ts := setupTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+server.RouteToken, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Empty(t, b)
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)
	resp, err := http.Get(ts.URL + server.RouteHealth)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
