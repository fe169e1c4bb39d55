package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-oauth2-client/auth"
	"github.com/jrsteele09/go-oauth2-client/internal/config"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	auth   *auth.AuthorizationService
}

func New(config config.Config, authService *auth.AuthorizationService) *Server {
	s := &Server{
		env:    config.GetEnv(),
		mux:    http.NewServeMux(),
		config: config,
		auth:   authService,
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Info().Str("method", colourMethod(parts[0])).Str("path", parts[1]).Msg("route")
		} else {
			log.Info().Str("method", colourMethod("ANY")).Str("path", parts[0]).Msg("route")
		}
	}
}
