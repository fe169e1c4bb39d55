package params_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/go-oauth2-client/params"
	"github.com/stretchr/testify/require"
)

func TestFromPairs(t *testing.T) {
	t.Run("repeated key collapses to multi in order", func(t *testing.T) {
		qp := params.FromPairs([]params.Pair{{Key: "scope", Value: "a"}, {Key: "scope", Value: "b"}})
		v, ok := qp.Get("scope")
		require.True(t, ok)
		require.True(t, v.IsMulti())
		values, ok := v.Multi()
		require.True(t, ok)
		require.Equal(t, []string{"a", "b"}, values)
		_, ok = v.Single()
		require.False(t, ok)
	})

	t.Run("single key stays single", func(t *testing.T) {
		qp := params.FromPairs([]params.Pair{{Key: "state", Value: "xyz"}, {Key: "scope", Value: "a"}})
		state, ok := qp.Single("state")
		require.True(t, ok)
		require.Equal(t, "xyz", state)
		v, _ := qp.Get("scope")
		_, ok = v.Multi()
		require.False(t, ok)
	})

	t.Run("empty input yields empty mapping", func(t *testing.T) {
		qp := params.FromPairs(nil)
		require.Equal(t, 0, qp.Len())
		_, ok := qp.Get("state")
		require.False(t, ok)
	})
}

func TestFromURL(t *testing.T) {
	u, err := url.Parse("https://localhost/cb?state=abc&code=MOCK_CODE&scope=a&scope=b")
	require.NoError(t, err)

	qp := params.FromURL(u)
	require.Equal(t, 3, qp.Len())
	code, ok := qp.Single("code")
	require.True(t, ok)
	require.Equal(t, "MOCK_CODE", code)

	scope, _ := qp.Get("scope")
	values, ok := scope.Multi()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, values)

	require.Equal(t, 0, params.FromURL(nil).Len())
	noQuery, _ := url.Parse("https://localhost/cb")
	require.Equal(t, 0, params.FromURL(noQuery).Len())
}

func TestPairs(t *testing.T) {
	qp := params.FromPairs([]params.Pair{
		{Key: "scope", Value: "b"},
		{Key: "code", Value: "c"},
		{Key: "scope", Value: "a"},
	})
	require.Equal(t, []params.Pair{
		{Key: "code", Value: "c"},
		{Key: "scope", Value: "b"},
		{Key: "scope", Value: "a"},
	}, qp.Pairs())

	roundTrip := params.FromPairs(qp.Pairs())
	require.Equal(t, qp, roundTrip)
}

func TestParse(t *testing.T) {
	qp, err := params.Parse("grant_type=authorization_code&code=abc")
	require.NoError(t, err)
	gt, ok := qp.Single("grant_type")
	require.True(t, ok)
	require.Equal(t, "authorization_code", gt)

	_, err = params.Parse("bad=%zz")
	require.Error(t, err)
}

func TestNewValue(t *testing.T) {
	require.True(t, params.NewValue().IsSingle())
	require.True(t, params.NewValue("a").IsSingle())
	require.True(t, params.NewValue("a", "b").IsMulti())
	require.Equal(t, "a b", params.NewValue("a", "b").String())
}

func TestEncodePairs(t *testing.T) {
	encoded := params.EncodePairs([]params.Pair{
		{Key: "error", Value: "invalid_request"},
		{Key: "error_description", Value: "Bad Request: Missing `state`"},
	})
	require.Equal(t, "error=invalid_request&error_description=Bad+Request%3A+Missing+%60state%60", encoded)
}
