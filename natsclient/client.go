// Package natsclient provides a client for managing NATS connections used as
// the messaging transport for state change notifications.
package natsclient

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360/statekit/errors"
)

// ConnectionStatus represents the state of the NATS connection
type ConnectionStatus int

// Possible connection statuses
const (
	StatusDisconnected ConnectionStatus = iota
	StatusConnecting
	StatusConnected
	StatusReconnecting
)

// String returns the string representation of ConnectionStatus
func (s ConnectionStatus) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// Client manages a NATS connection with reconnect handling and status tracking
type Client struct {
	url      string
	status   atomic.Value // stores ConnectionStatus
	failures atomic.Int32
	logger   *slog.Logger

	// NATS connection
	conn *nats.Conn
	subs []*nats.Subscription

	// Connection options
	maxReconnects int
	reconnectWait time.Duration
	pingInterval  time.Duration
	timeout       time.Duration
	drainTimeout  time.Duration

	// Authentication - sensitive fields cleared on close
	username string
	password string
	token    string

	// Client identification
	clientName string

	// Callbacks
	onDisconnect func(error)
	onReconnect  func()

	// Synchronization
	mu     sync.RWMutex
	closed atomic.Bool
}

// NewClient creates a new NATS client with optional configuration.
// The client is created disconnected; call Connect to establish the connection.
func NewClient(url string, opts ...ClientOption) (*Client, error) {
	if url == "" {
		return nil, errors.WrapConfiguration(
			errors.ErrMissingConfig, "Client", "NewClient", "URL validation")
	}

	c := &Client{
		url:    url,
		logger: slog.Default(),
		// Sensible defaults
		maxReconnects: -1, // infinite by default
		reconnectWait: 2 * time.Second,
		pingInterval:  30 * time.Second,
		timeout:       5 * time.Second,
		drainTimeout:  30 * time.Second,
		clientName:    "statekit",
	}
	c.status.Store(StatusDisconnected)

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Connect establishes the NATS connection
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && c.conn.IsConnected() {
		return nil
	}

	c.status.Store(StatusConnecting)

	natsOpts := []nats.Option{
		nats.Name(c.clientName),
		nats.Timeout(c.timeout),
		nats.MaxReconnects(c.maxReconnects),
		nats.ReconnectWait(c.reconnectWait),
		nats.PingInterval(c.pingInterval),
		nats.DrainTimeout(c.drainTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			c.status.Store(StatusReconnecting)
			c.recordFailure()
			c.logger.Warn("NATS disconnected", "error", err)
			if c.onDisconnect != nil {
				c.onDisconnect(err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			c.status.Store(StatusConnected)
			c.resetFailures()
			c.logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
			if c.onReconnect != nil {
				c.onReconnect()
			}
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			c.status.Store(StatusDisconnected)
			c.logger.Info("NATS connection closed")
		}),
	}

	if c.username != "" {
		natsOpts = append(natsOpts, nats.UserInfo(c.username, c.password))
	}
	if c.token != "" {
		natsOpts = append(natsOpts, nats.Token(c.token))
	}

	conn, err := nats.Connect(c.url, natsOpts...)
	if err != nil {
		c.status.Store(StatusDisconnected)
		c.recordFailure()
		return errors.WrapTransient(err, "Client", "Connect", "NATS connection")
	}

	c.conn = conn
	c.status.Store(StatusConnected)
	c.resetFailures()
	c.logger.Info("NATS connected", "url", conn.ConnectedUrl())

	return nil
}

// Publish publishes raw data to a subject
func (c *Client) Publish(subject string, data []byte) error {
	conn := c.connection()
	if conn == nil {
		return errors.WrapTransient(errors.ErrNoConnection, "Client", "Publish", "connection check")
	}

	if err := conn.Publish(subject, data); err != nil {
		c.recordFailure()
		return errors.WrapTransient(err, "Client", "Publish", "publish to "+subject)
	}

	return nil
}

// Subscribe registers a handler for a subject. The subscription is tracked:
// Drain lets it finish in-flight messages, Close unsubscribes it immediately.
func (c *Client) Subscribe(subject string, cb func(msg *nats.Msg)) (*nats.Subscription, error) {
	conn := c.connection()
	if conn == nil {
		return nil, errors.WrapTransient(errors.ErrNoConnection, "Client", "Subscribe", "connection check")
	}

	sub, err := conn.Subscribe(subject, cb)
	if err != nil {
		c.recordFailure()
		return nil, errors.WrapTransient(err, "Client", "Subscribe", "subscribe to "+subject)
	}

	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	return sub, nil
}

// Drain drains all subscriptions and the connection, letting in-flight
// messages finish before closing
func (c *Client) Drain() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	if err := c.conn.Drain(); err != nil {
		return errors.WrapTransient(err, "Client", "Drain", "connection drain")
	}

	return nil
}

// Close closes the connection immediately and clears credentials
func (c *Client) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			c.logger.Warn("failed to unsubscribe on close",
				"subject", sub.Subject, "error", err)
		}
	}
	c.subs = nil

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	// Clear sensitive fields
	c.username = ""
	c.password = ""
	c.token = ""

	c.status.Store(StatusDisconnected)
}

// Status returns the current connection status
func (c *Client) Status() ConnectionStatus {
	if s, ok := c.status.Load().(ConnectionStatus); ok {
		return s
	}
	return StatusDisconnected
}

// IsConnected reports whether the underlying connection is live
func (c *Client) IsConnected() bool {
	conn := c.connection()
	return conn != nil && conn.IsConnected()
}

// URL returns the configured server URL
func (c *Client) URL() string {
	return c.url
}

// Failures returns the count of failures since the last successful operation
func (c *Client) Failures() int32 {
	return c.failures.Load()
}

func (c *Client) connection() *nats.Conn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

func (c *Client) recordFailure() {
	c.failures.Add(1)
}

func (c *Client) resetFailures() {
	c.failures.Store(0)
}
