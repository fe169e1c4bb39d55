package config

type SecurityConfig interface {
	GetRequireRedirectURI() bool
	GetErrorRedirectURI() string
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetRequireRedirectURI() bool {
	return GetEnvBool("REQUIRE_REDIRECT_URI", false)
}

// GetErrorRedirectURI is where errors go when the request names no registered client.
func (Security) GetErrorRedirectURI() string {
	return GetEnv("ERROR_REDIRECT_URI", "https://example.com")
}
