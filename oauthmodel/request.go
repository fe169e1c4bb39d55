package oauthmodel

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-oauth2-client/params"
)

const ContentTypeForm = "application/x-www-form-urlencoded"

// Request is a transport independent request: a target URL and an optional form
// encoded body. Authorization requests and redirects carry everything in the URL,
// token requests carry their parameters in Body.
type Request struct {
	Method string
	URL    *url.URL
	Body   string
}

// NewRequest builds a GET request for rawURL.
func NewRequest(rawURL string) (Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Request{}, err
	}
	return Request{Method: http.MethodGet, URL: u}, nil
}

// NewRequestWithQuery builds a GET request to base with pairs appended to any existing query
// in the given order.
func NewRequestWithQuery(base string, pairs []params.Pair) (Request, error) {
	u, err := url.Parse(base)
	if err != nil {
		return Request{}, err
	}
	q := u.RawQuery
	if encoded := params.EncodePairs(pairs); encoded != "" {
		if q != "" {
			q += "&"
		}
		q += encoded
	}
	u.RawQuery = q
	return Request{Method: http.MethodGet, URL: u}, nil
}

// Path returns the URL path, or "" when there is no URL.
func (r Request) Path() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.Path
}

// Params merges the URL query and the form body. Body values follow query values for
// the same key.
func (r Request) Params() (params.QueryParams, error) {
	values := url.Values{}
	if r.URL != nil {
		q, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			return nil, err
		}
		values = q
	}
	if r.Body != "" {
		form, err := url.ParseQuery(r.Body)
		if err != nil {
			return nil, err
		}
		for k, vs := range form {
			values[k] = append(values[k], vs...)
		}
	}
	return params.FromValues(values), nil
}

func (r Request) String() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.String()
}

// Response is a status and body pair, as produced by the token endpoint.
type Response struct {
	Status int
	Body   string
}
