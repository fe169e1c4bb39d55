package oauthmodel

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	interrors "github.com/jrsteele09/go-oauth2-client/internal/errors"
	"github.com/jrsteele09/go-oauth2-client/params"
)

// ErrorCode is the wire value of the `error` parameter (RFC 6749 §4.1.2.1 and §5.2).
type ErrorCode string

const (
	// ErrorCodeInvalidRequest: a required parameter is missing, repeated, or malformed.
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrorCodeInvalidClient: client authentication failed at the token endpoint.
	ErrorCodeInvalidClient ErrorCode = "invalid_client"

	// ErrorCodeInvalidGrant: the code or state is invalid, expired, or already used.
	ErrorCodeInvalidGrant ErrorCode = "invalid_grant"

	// ErrorCodeUnauthorizedClient: the client is not registered for this flow.
	ErrorCodeUnauthorizedClient ErrorCode = "unauthorized_client"

	// ErrorCodeUnsupportedGrantType: the grant type is not supported.
	ErrorCodeUnsupportedGrantType ErrorCode = "unsupported_grant_type"

	// ErrorCodeInvalidScope: a requested scope is unknown or not allowed.
	ErrorCodeInvalidScope ErrorCode = "invalid_scope"

	// ErrorCodeServerError is what every internal or unknown failure is reported as.
	ErrorCodeServerError ErrorCode = "server_error"
)

var knownCodes = map[ErrorCode]struct{}{
	ErrorCodeInvalidRequest:       {},
	ErrorCodeInvalidClient:        {},
	ErrorCodeInvalidGrant:         {},
	ErrorCodeUnauthorizedClient:   {},
	ErrorCodeUnsupportedGrantType: {},
	ErrorCodeInvalidScope:         {},
	ErrorCodeServerError:          {},
}

// Kind sentinels for use with errors.Is.
var (
	ErrInvalidRequest       = &Error{Code: ErrorCodeInvalidRequest}
	ErrInvalidClient        = &Error{Code: ErrorCodeInvalidClient}
	ErrInvalidGrant         = &Error{Code: ErrorCodeInvalidGrant}
	ErrUnauthorizedClient   = &Error{Code: ErrorCodeUnauthorizedClient}
	ErrUnsupportedGrantType = &Error{Code: ErrorCodeUnsupportedGrantType}
	ErrInvalidScope         = &Error{Code: ErrorCodeInvalidScope}
	ErrUnknown              = &Error{Code: ErrorCodeServerError}
)

// Error is the only failure shape that crosses the network boundary. Description and
// URI are optional, an empty string means absent.
type Error struct {
	Code        ErrorCode
	Description string
	URI         string
	cause       error
}

func newError(code ErrorCode, description, uri string) *Error {
	return &Error{Code: code, Description: description, URI: uri}
}

func InvalidRequest(description, uri string) *Error {
	return newError(ErrorCodeInvalidRequest, description, uri)
}

func InvalidClient(description, uri string) *Error {
	return newError(ErrorCodeInvalidClient, description, uri)
}

func InvalidGrant(description, uri string) *Error {
	return newError(ErrorCodeInvalidGrant, description, uri)
}

func UnauthorizedClient(description, uri string) *Error {
	return newError(ErrorCodeUnauthorizedClient, description, uri)
}

func UnsupportedGrantType(description, uri string) *Error {
	return newError(ErrorCodeUnsupportedGrantType, description, uri)
}

func InvalidScope(description, uri string) *Error {
	return newError(ErrorCodeInvalidScope, description, uri)
}

// Unknown is the catch all. It always maps to server_error on the wire.
func Unknown(message string) *Error {
	return newError(ErrorCodeServerError, message, "")
}

// Wrap returns a copy of e that unwraps to cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.cause = cause
	return &c
}

func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error by code, so the Err* sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Description == "" && t.URI == ""
}

// HTTPStatus is the status the token endpoint answers with for this error.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case ErrorCodeInvalidClient:
		return http.StatusUnauthorized
	case ErrorCodeServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// RedirectParams returns the redirect query parameters in wire order. Absent fields
// are omitted, not sent empty.
func (e *Error) RedirectParams(state string) []params.Pair {
	pairs := []params.Pair{{Key: ParamError, Value: string(e.Code)}}
	if e.Description != "" {
		pairs = append(pairs, params.Pair{Key: ParamErrorDescription, Value: e.Description})
	}
	if e.URI != "" {
		pairs = append(pairs, params.Pair{Key: ParamErrorURI, Value: e.URI})
	}
	if state != "" {
		pairs = append(pairs, params.Pair{Key: ParamState, Value: state})
	}
	return pairs
}

// ErrorResponse returns the JSON body shape for the token endpoint.
func (e *Error) ErrorResponse(state string) ErrorResponse {
	return ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
		ErrorURI:         e.URI,
		State:            state,
	}
}

// ResponseBody renders the JSON error object.
func (e *Error) ResponseBody(state string) string {
	b, err := json.Marshal(e.ErrorResponse(state))
	if err != nil {
		// Only strings are marshalled so this cannot fail.
		return fmt.Sprintf(`{"error":%q}`, ErrorCodeServerError)
	}
	return string(b)
}

// AsError coerces any error into the taxonomy. Errors that are not already an *Error
// become Unknown wrapping the original.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var oe *Error
	if interrors.As(err, &oe) {
		return oe
	}
	return Unknown(err.Error()).Wrap(err)
}

// ErrorFromParams decodes an error redirect. ok is false when there is no `error` parameter.
func ErrorFromParams(qp params.QueryParams) (*Error, bool) {
	v, ok := qp.Get(ParamError)
	if !ok {
		return nil, false
	}
	code, single := v.Single()
	if !single {
		return InvalidRequest("Bad Request: Expected Single Parameter, found many", ""), true
	}
	desc, _ := qp.Single(ParamErrorDescription)
	uri, _ := qp.Single(ParamErrorURI)
	return decode(ErrorCode(code), desc, uri), true
}

// ParseErrorResponse decodes a JSON error body. ok is false when body is not one.
func ParseErrorResponse(body []byte) (*Error, bool) {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return nil, false
	}
	return decode(er.Error, er.ErrorDescription, er.ErrorURI), true
}

func decode(code ErrorCode, description, uri string) *Error {
	if _, ok := knownCodes[code]; !ok {
		msg := strings.TrimSpace(fmt.Sprintf("unrecognised error code %q %s", code, description))
		return Unknown(msg)
	}
	return newError(code, description, uri)
}
