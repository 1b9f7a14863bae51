package httputil

import "time"

// ClientConfig configures the client used by the command line tool.
type ClientConfig struct {
	BearerToken string        `envconfig:"KDR_AUTH_TOKEN"`
	Timeout     time.Duration `envconfig:"KDR_CLIENT_TIMEOUT" default:"30s"`
}

// ServerConfig is shared by every handler behind the listener.
type ServerConfig struct {
	BearerToken string `envconfig:"KDR_AUTH_TOKEN"`
}
