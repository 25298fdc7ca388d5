// Package messenger defines the publish/subscribe contract consumed by the
// composer and provides the NATS-backed transport implementation.
package messenger

// StateChange is the payload convention for change notifications: the new
// state value paired with a best-effort list of changed structural paths.
//
// Paths may be empty when the origin cannot supply path-level diffs (legacy
// children notify through a bare callback with no diff information).
type StateChange struct {
	EventID string   `json:"event_id,omitempty"` // Publisher-assigned notification ID
	State   any      `json:"state"`              // Full new state value
	Paths   []string `json:"paths,omitempty"`    // Changed structural paths, best-effort
}

// Handler is invoked for every change published on a subscribed topic.
// Dispatch is synchronous and delivery order matches publish order.
type Handler func(change StateChange)

// Messenger is the bus contract the composer consumes. The bus itself is an
// external collaborator (NATS in production, testutil.Bus in tests).
type Messenger interface {
	// Subscribe registers handler for every change published on topic.
	Subscribe(topic string, handler Handler) error

	// Publish announces a change on topic.
	Publish(topic string, change StateChange) error
}

// Registrar is implemented by messengers that track named state owners.
// A composer registers its composite state so callers on the bus can ask
// for the current snapshot without waiting for the next change.
type Registrar interface {
	Register(name string, snapshot func() any) error
}

const (
	stateChangeSuffix = ":stateChange"
	stateSuffix       = ":state"
)

// StateChangeTopic returns the topic a named component announces its state
// changes on.
func StateChangeTopic(name string) string {
	return name + stateChangeSuffix
}

// StateTopic returns the request/reply topic serving a named component's
// current state snapshot.
func StateTopic(name string) string {
	return name + stateSuffix
}
