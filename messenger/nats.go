package messenger

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/c360/statekit/errors"
	"github.com/c360/statekit/natsclient"
)

// NATS bridges the Messenger contract onto a NATS connection. Topics map
// directly to NATS subjects and StateChange payloads are JSON-encoded.
type NATS struct {
	client *natsclient.Client
	logger *slog.Logger
}

// NATSOption configures a NATS messenger
type NATSOption func(*NATS)

// WithLogger sets the logger used for payload decode failures
func WithLogger(logger *slog.Logger) NATSOption {
	return func(n *NATS) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// NewNATS creates a messenger over an existing NATS client. The client's
// connection lifecycle stays with the caller.
func NewNATS(client *natsclient.Client, opts ...NATSOption) (*NATS, error) {
	if client == nil {
		return nil, errors.WrapConfiguration(
			errors.ErrMissingConfig, "NATS", "NewNATS", "client validation")
	}

	n := &NATS{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

// Subscribe registers handler for every change published on topic.
// Malformed payloads are logged and dropped; a handler never sees them.
func (n *NATS) Subscribe(topic string, handler Handler) error {
	_, err := n.client.Subscribe(topic, func(msg *nats.Msg) {
		var change StateChange
		if err := json.Unmarshal(msg.Data, &change); err != nil {
			n.logger.Error("dropping malformed state change",
				"topic", topic, "error", err)
			return
		}
		handler(change)
	})
	if err != nil {
		return errors.Wrap(err, "NATS", "Subscribe", "subscribe to "+topic)
	}

	return nil
}

// Publish announces a change on topic.
func (n *NATS) Publish(topic string, change StateChange) error {
	data, err := json.Marshal(change)
	if err != nil {
		return errors.WrapValidation(err, "NATS", "Publish", "payload encoding")
	}

	if err := n.client.Publish(topic, data); err != nil {
		return errors.Wrap(err, "NATS", "Publish", "publish to "+topic)
	}

	return nil
}

// Register installs a request/reply responder serving the owner's current
// state snapshot on StateTopic(name).
func (n *NATS) Register(name string, snapshot func() any) error {
	_, err := n.client.Subscribe(StateTopic(name), func(msg *nats.Msg) {
		if msg.Reply == "" {
			return
		}

		data, err := json.Marshal(snapshot())
		if err != nil {
			n.logger.Error("failed to encode state snapshot",
				"owner", name, "error", err)
			return
		}

		if err := msg.Respond(data); err != nil {
			n.logger.Error("failed to respond with state snapshot",
				"owner", name, "error", err)
		}
	})
	if err != nil {
		return errors.Wrap(err, "NATS", "Register", "state responder for "+name)
	}

	return nil
}
