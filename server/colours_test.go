package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColourMethod(t *testing.T) {
	require.Equal(t, "\033[32mGET\033[0m", colourMethod("GET"))
	require.Equal(t, "\033[90mDELETE\033[0m", colourMethod("DELETE"))
}
