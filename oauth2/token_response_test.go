package oauth2_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-oauth2-client/internal/utils"
	"github.com/jrsteele09/go-oauth2-client/oauth2"
	"github.com/stretchr/testify/require"
)

func TestScope_UnmarshalJSON(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		var tr oauth2.TokenResponse
		require.NoError(t, json.Unmarshal([]byte(`{"access_token":"a","token_type":"bearer","scope":["x","y"]}`), &tr))
		require.Equal(t, oauth2.Scope{"x", "y"}, tr.Scope)
	})

	t.Run("space delimited", func(t *testing.T) {
		var tr oauth2.TokenResponse
		require.NoError(t, json.Unmarshal([]byte(`{"access_token":"a","token_type":"bearer","scope":"x  y"}`), &tr))
		require.Equal(t, oauth2.Scope{"x", "y"}, tr.Scope)
		require.Equal(t, "x y", tr.Scope.String())
	})

	t.Run("wrong type", func(t *testing.T) {
		var tr oauth2.TokenResponse
		require.Error(t, json.Unmarshal([]byte(`{"scope":42}`), &tr))
	})
}

func TestTokenResponse_OmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(oauth2.TokenResponse{AccessToken: "a", TokenType: oauth2.TokenTypeBearer})
	require.NoError(t, err)
	require.JSONEq(t, `{"access_token":"a","token_type":"bearer"}`, string(b))

	b, err = json.Marshal(oauth2.TokenResponse{
		AccessToken: "a",
		TokenType:   oauth2.TokenTypeBearer,
		ExpiresIn:   utils.Ptr(int64(3600)),
		Scope:       oauth2.Scope{"user.foo", "user.profile"},
		State:       utils.Ptr("xyz"),
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"access_token":"a","token_type":"bearer","expires_in":3600,"scope":["user.foo","user.profile"],"state":"xyz"}`, string(b))
}

func TestGrantType_Supported(t *testing.T) {
	require.True(t, oauth2.AuthorizationCodeGrant.Supported())
	require.False(t, oauth2.RefreshTokenGrant.Supported())
	require.False(t, oauth2.GrantType("bogus").Supported())
}
