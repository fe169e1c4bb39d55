package auth

// Error descriptions sent back to clients.
const (
	msgMissingState       = "Bad Request: Missing `state`"
	msgMissingClientID    = "Bad Request: Missing `client_id`"
	msgMissingRedirectURI = "Bad Request: Missing `redirect_uri`"
	msgMissingCode        = "Bad Request: Missing `code`"
	msgRedirectMismatch   = "Bad Request: Redirect Uri does not match valid uri"
	msgMultipleValues     = "Bad Request: Expected Single Parameter, found many"
	msgUnsupportedType    = "Bad Request: Unsupported `response_type`"
	msgMalformedRequest   = "Bad Request: Malformed parameters"
	msgClientNotAuthed    = "Unauthorized: Client Not Authorized"
	msgRouteNotFound      = "404: Route not found"

	msgUnsupportedGrant = "Unsupported `grant_type`"
	msgInvalidCode      = "Invalid authorization `code`"
	msgUnknownClient    = "Unknown `client_id`"
	msgBadSecret        = "Client authentication failed"
	msgTokenRedirect    = "`redirect_uri` does not match the authorization request"
)
