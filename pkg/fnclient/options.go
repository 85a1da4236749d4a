package fnclient

import "time"

// Option configures a Client.
type Option func(*clientConfig)

// clientConfig holds the configuration for a Client.
type clientConfig struct {
	host    string
	port    int
	timeout time.Duration
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	return &clientConfig{
		host:    "localhost",
		port:    7433,
		timeout: 30 * time.Second,
	}
}

// WithHost sets the server host.
func WithHost(host string) Option {
	return func(c *clientConfig) {
		c.host = host
	}
}

// WithPort sets the server port.
func WithPort(port int) Option {
	return func(c *clientConfig) {
		c.port = port
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}
