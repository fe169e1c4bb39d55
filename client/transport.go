package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-oauth2-client/oauthmodel"
	"github.com/pkg/errors"
)

const maxResponseBytes = 1 << 20

// Transport performs the HTTP exchange implied by a Request.
type Transport interface {
	Do(ctx context.Context, req oauthmodel.Request) (oauthmodel.Response, error)
}

// HTTPTransport is a Transport over net/http.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport returns a transport with a request timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{Client: &http.Client{Timeout: timeout}}
}

func (t *HTTPTransport) Do(ctx context.Context, req oauthmodel.Request) (oauthmodel.Response, error) {
	if req.URL == nil {
		return oauthmodel.Response{}, errors.New("request has no url")
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL.String(), body)
	if err != nil {
		return oauthmodel.Response{}, errors.Wrap(err, "build request")
	}
	if req.Body != "" {
		httpReq.Header.Set("Content-Type", oauthmodel.ContentTypeForm)
	}
	httpReq.Header.Set("Accept", "application/json")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpResp, err := client.Do(httpReq)
	if err != nil {
		return oauthmodel.Response{}, errors.Wrapf(err, "%s %s", method, req.URL.Redacted())
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return oauthmodel.Response{}, errors.Wrap(err, "read response")
	}
	return oauthmodel.Response{Status: httpResp.StatusCode, Body: string(data)}, nil
}
