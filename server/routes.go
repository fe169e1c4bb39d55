package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteAuthorize, ChainMiddleware(s.Authorize(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthorize, ChainMiddleware(s.Authorize(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteToken, ChainMiddleware(s.Token(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteToken, ChainMiddleware(s.Preflight(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteHealth, s.Health())

	// Everything else goes through the service router, which answers 404 in the OAuth error shape
	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFound(), s.APIMiddleware()...))
}
