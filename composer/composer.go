package composer

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/statekit/component"
	"github.com/c360/statekit/errors"
	"github.com/c360/statekit/messenger"
	"github.com/c360/statekit/metric"
)

// DefaultName is the composer name, and thus aggregate topic prefix, used
// when no override is supplied.
const DefaultName = "Composer"

// Composer owns the composite state and metadata for a fixed set of child
// components and republishes one aggregate notification per child change.
type Composer struct {
	name    string
	m       messenger.Messenger
	logger  *slog.Logger
	metrics *metric.ComposerMetrics

	// replaceMu serializes replace-and-publish cycles: regardless of how
	// many notification sources exist, mutations flow through one entry
	// point and aggregate notifications keep arrival order.
	replaceMu sync.Mutex

	// stateMu guards the maps below so snapshots stay readable from
	// handlers running inside a replace cycle.
	stateMu sync.RWMutex
	names   []string
	slices  map[string]any
	meta    map[string]component.Meta
}

// New builds a composer over the supplied children and messenger handle.
//
// Children are processed in list order. Duplicate names silently overwrite
// earlier entries (last write wins) while keeping the original insertion
// position. A nil messenger fails with a configuration error before any
// side effects; a child matching no recognized contract, or one sharing
// the composer's own name, fails with a validation error mid-construction,
// leaving earlier children's subscriptions registered (see the package
// documentation).
func New(m messenger.Messenger, children []component.Child, opts ...Option) (*Composer, error) {
	if m == nil {
		return nil, errors.WrapConfiguration(
			errors.ErrMissingMessenger, "Composer", "New", "messenger check")
	}

	c := &Composer{
		name:   DefaultName,
		m:      m,
		logger: slog.Default(),
		slices: make(map[string]any),
		meta:   make(map[string]component.Meta),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := component.ValidateName(c.name); err != nil {
		return nil, errors.WrapConfiguration(err, "Composer", "New", "composer name check")
	}

	// Fold metadata: every child gets an entry, modern descriptors copied
	// verbatim, everything else synthesized.
	for _, child := range children {
		c.meta[child.Name] = component.MetaFor(child)
	}

	// Fold state: one slice per child with a discoverable snapshot.
	for _, child := range children {
		if child.State == nil {
			continue
		}
		if _, exists := c.slices[child.Name]; !exists {
			c.names = append(c.names, child.Name)
		}
		c.slices[child.Name] = child.State
	}

	if c.metrics != nil {
		c.metrics.CompositeSlices.Set(float64(len(c.slices)))
	}

	// Register the composite as its own state owner so it can be asked
	// for snapshots and can publish its own change notifications.
	if r, ok := m.(messenger.Registrar); ok {
		if err := r.Register(c.name, func() any { return c.State() }); err != nil {
			return nil, errors.Wrap(err, "Composer", "New", "composite state registration")
		}
	}

	// Bridge one subscription per child, in list order. No rollback on
	// failure (see package documentation).
	for _, child := range children {
		if err := c.bridge(child); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// bridge classifies one child and registers its change subscription.
func (c *Composer) bridge(child component.Child) error {
	if err := child.Validate(); err != nil {
		return errors.Wrap(err, "Composer", "New", "child classification")
	}

	name := child.Name

	// A child sharing the composer's name would make the composer observe
	// its own aggregate topic and republish every notification back to
	// itself, looping forever on a synchronous bus.
	if name == c.name {
		msg := fmt.Errorf("child %q shares the composer's name", name)
		return errors.WrapValidation(msg, "Composer", "New", "name collision check")
	}

	switch {
	case child.Kind == component.KindModern,
		child.Kind == component.KindLegacy && child.HasMessenger:
		// Bus path: the child announces its own changes on the bus.
		err := c.m.Subscribe(messenger.StateChangeTopic(name), func(change messenger.StateChange) {
			c.replaceSlice(name, change.State, prefixPaths(name, change.Paths))
		})
		if err != nil {
			return errors.Wrap(err, "Composer", "New", "bus subscription for "+name)
		}

	case child.Kind == component.KindLegacy:
		// Direct path: the child invokes our listener itself. Legacy
		// children supply no path-level diffs, so the changed path is
		// the whole slice.
		child.Listen(func(newState any) {
			c.replaceSlice(name, newState, []string{name})
		})

	default:
		return errors.WrapValidation(
			errors.ErrUnknownChildKind, "Composer", "New", "child classification")
	}

	c.logger.Debug("bridged child subscription",
		"composer", c.name, "child", name, "kind", child.Kind.String())

	return nil
}

// replaceSlice performs a full replace of the named slice and publishes one
// aggregate notification carrying the new composite snapshot. Replace and
// publish run as a unit under replaceMu.
func (c *Composer) replaceSlice(name string, value any, paths []string) {
	start := time.Now()

	c.replaceMu.Lock()
	defer c.replaceMu.Unlock()

	c.stateMu.Lock()
	if _, exists := c.slices[name]; !exists {
		c.names = append(c.names, name)
	}
	c.slices[name] = value
	snapshot := maps.Clone(c.slices)
	sliceCount := len(c.slices)
	c.stateMu.Unlock()

	if c.metrics != nil {
		c.metrics.NotificationsReceived.WithLabelValues(name).Inc()
		c.metrics.CompositeSlices.Set(float64(sliceCount))
	}

	change := messenger.StateChange{
		EventID: uuid.NewString(),
		State:   snapshot,
		Paths:   paths,
	}
	if err := c.m.Publish(messenger.StateChangeTopic(c.name), change); err != nil {
		// No runtime failure path exists once construction succeeded;
		// a failed republish is logged and the composite stays current.
		c.logger.Error("failed to publish aggregate state change",
			"composer", c.name, "child", name, "error", err)
	} else if c.metrics != nil {
		c.metrics.NotificationsPublished.Inc()
	}

	if c.metrics != nil {
		c.metrics.ReplaceDuration.Observe(time.Since(start).Seconds())
	}
}

// prefixPaths qualifies child-relative changed paths with the child name.
// An empty list degrades to the whole slice.
func prefixPaths(name string, paths []string) []string {
	if len(paths) == 0 {
		return []string{name}
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = name + "." + p
	}
	return out
}

// Name returns the composer's own name.
func (c *Composer) Name() string {
	return c.name
}

// State returns a snapshot copy of the composite state.
func (c *Composer) State() map[string]any {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	return maps.Clone(c.slices)
}

// Metadata returns a snapshot copy of the composite metadata.
func (c *Composer) Metadata() map[string]component.Meta {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	return maps.Clone(c.meta)
}

// Names returns the slice names in insertion order.
func (c *Composer) Names() []string {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	return slices.Clone(c.names)
}

// Slice returns one child's slice of the composite state.
func (c *Composer) Slice(name string) (any, bool) {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	value, ok := c.slices[name]
	return value, ok
}

// AsChild adapts the composer into the modern child contract so composites
// nest: the parent observes this composer's aggregate topic on the bus.
func (c *Composer) AsChild() component.Child {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	metadata := make(map[string]component.Descriptor, len(c.meta))
	for name, m := range c.meta {
		metadata[name] = m.Descriptor()
	}

	return component.Modern(c.name, maps.Clone(c.slices), metadata)
}
