package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-oauth2-client/oauthmodel"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	maxFormBytes    = 1 << 16
)

// Authorize validates the authorization request and redirects the user agent, on
// success and on failure alike.
func (s *Server) Authorize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := toRequest(w, r)
		if err != nil {
			writeJSONError(w, oauthmodel.InvalidRequest("Failed to parse request", ""))
			return
		}
		redirect := s.auth.Authorize(r.Context(), req)
		http.Redirect(w, r, redirect.String(), http.StatusFound)
	}
}

// Token exchanges an authorization code for an access token
func (s *Server) Token() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := toRequest(w, r)
		if err != nil {
			writeJSONError(w, oauthmodel.InvalidRequest("Failed to parse form data", ""))
			return
		}
		writeResponse(w, s.auth.Token(r.Context(), req))
	}
}

// Preflight answers OPTIONS requests. CORS headers are set by CorsMiddleware.
func (s *Server) Preflight() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// NotFound routes unknown paths through the service so they get the standard error body
func (s *Server) NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := toRequest(w, r)
		if err != nil {
			writeJSONError(w, oauthmodel.InvalidRequest("Failed to parse request", ""))
			return
		}
		result := s.auth.Route(r.Context(), req)
		if result.IsRedirect() {
			http.Redirect(w, r, result.Redirect.String(), http.StatusFound)
			return
		}
		writeResponse(w, *result.Response)
	}
}

func (s *Server) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// toRequest converts to the transport independent request. Form bodies are re-encoded
// into Body, the query stays on the URL.
func toRequest(w http.ResponseWriter, r *http.Request) (oauthmodel.Request, error) {
	req := oauthmodel.Request{Method: r.Method, URL: r.URL}
	if r.Method != http.MethodPost {
		return req, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("failed to parse form")
		return oauthmodel.Request{}, err
	}
	req.Body = r.PostForm.Encode()
	return req, nil
}

func writeResponse(w http.ResponseWriter, resp oauthmodel.Response) {
	w.Header().Set("Content-Type", contentTypeJSON)
	// RFC 6749 §5.1: token responses must not be cached
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}

func writeJSONError(w http.ResponseWriter, err *oauthmodel.Error) {
	writeResponse(w, oauthmodel.Response{Status: err.HTTPStatus(), Body: err.ResponseBody("")})
}
