package config

type Config interface {
	EnvConfig
	CorsConfig
	OAuthConfig
	ClientConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	OAuth
	RegisteredClient
	Security
}

func New() Config {
	return mainConfig{}
}
