package server

import "github.com/jrsteele09/go-oauth2-client/auth"

// Route path constants
const (
	RouteAuthorize = auth.PathAuth
	RouteToken     = auth.PathToken
	RouteHealth    = "/healthz"
)
