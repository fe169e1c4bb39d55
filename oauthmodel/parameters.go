package oauthmodel

// Wire parameter names used across the authorization and token endpoints.
const (
	ParamResponseType = "response_type"
	ParamClientID     = "client_id"
	ParamClientSecret = "client_secret"
	ParamRedirectURI  = "redirect_uri"
	ParamScope        = "scope"
	ParamState        = "state"
	ParamCode         = "code"
	ParamGrantType    = "grant_type"

	ParamError            = "error"
	ParamErrorDescription = "error_description"
	ParamErrorURI         = "error_uri"
)

// ErrorResponse is the JSON error body returned by the token endpoint.
type ErrorResponse struct {
	// Error is one of the fixed RFC 6749 §5.2 codes.
	Error ErrorCode `json:"error"`

	// ErrorDescription is human readable text for the developer.
	// Example: "Bad Request: Missing `client_id`"
	ErrorDescription string `json:"error_description,omitempty"`

	// ErrorURI points at documentation for the error.
	// Example: "https://docs.example.com/scopes?invalid_scope=api.example.com%2Ffasfa"
	ErrorURI string `json:"error_uri,omitempty"`

	// State is echoed when the failing request carried one.
	State string `json:"state,omitempty"`
}
