package config

// ClientConfig describes the single client registered with the server.
type ClientConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetAllowedScopes() []string
}

type RegisteredClient struct{}

var _ ClientConfig = RegisteredClient{}

func (RegisteredClient) GetClientID() string {
	return GetEnv("CLIENT_ID", "someid@example.com")
}

// GetClientSecret is empty for a public client.
func (RegisteredClient) GetClientSecret() string {
	return GetEnv("CLIENT_SECRET", "")
}

func (RegisteredClient) GetRedirectURI() string {
	return GetEnv("REDIRECT_URI", "https://localhost:8080/oauth/example")
}

func (RegisteredClient) GetAllowedScopes() []string {
	return GetEnvList("ALLOWED_SCOPES", []string{"api.example.com/user.profile", "api.example.com/add_item"})
}
