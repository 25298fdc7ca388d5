package natsclient

import (
	"log/slog"
	"time"
)

// ClientOption configures a Client
type ClientOption func(*Client)

// WithLogger sets the logger used for connection events
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithName sets the client name reported to the NATS server
func WithName(name string) ClientOption {
	return func(c *Client) {
		if name != "" {
			c.clientName = name
		}
	}
}

// WithTimeout sets the connection timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithMaxReconnects sets the maximum reconnect attempts (-1 for infinite)
func WithMaxReconnects(max int) ClientOption {
	return func(c *Client) {
		c.maxReconnects = max
	}
}

// WithReconnectWait sets the wait time between reconnect attempts
func WithReconnectWait(wait time.Duration) ClientOption {
	return func(c *Client) {
		c.reconnectWait = wait
	}
}

// WithPingInterval sets the server ping interval
func WithPingInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.pingInterval = interval
	}
}

// WithDrainTimeout sets the timeout for draining subscriptions on shutdown
func WithDrainTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.drainTimeout = timeout
	}
}

// WithCredentials sets username/password authentication
func WithCredentials(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithToken sets token authentication
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithDisconnectHandler sets a callback invoked on disconnect
func WithDisconnectHandler(handler func(error)) ClientOption {
	return func(c *Client) {
		c.onDisconnect = handler
	}
}

// WithReconnectHandler sets a callback invoked after a reconnect
func WithReconnectHandler(handler func()) ClientOption {
	return func(c *Client) {
		c.onReconnect = handler
	}
}
