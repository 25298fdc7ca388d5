package component

import (
	"fmt"

	"github.com/c360/statekit/errors"
)

// Kind tags a Child with the integration contract it satisfies.
type Kind int

const (
	// KindUnknown marks a child that matches no recognized contract.
	// Such children are rejected at composition time.
	KindUnknown Kind = iota
	// KindModern marks children that publish their own state changes on
	// the messaging bus under "<name>:stateChange" and carry per-field
	// metadata descriptors.
	KindModern
	// KindLegacy marks children that register a direct listener through
	// their own subscribe hook and carry default state/config surfaces.
	KindLegacy
)

// String returns a string representation of the child kind
func (k Kind) String() string {
	switch k {
	case KindModern:
		return "modern"
	case KindLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Listener receives a child's new state snapshot whenever it changes.
type Listener func(newState any)

// Child is the adapter form every composed component is converted to before
// composition. The Kind tag and the HasMessenger capability flag are set
// explicitly by the adapter constructors; the composer classifies children
// on these alone.
//
// Only the fields relevant to a child's Kind are populated. State may be nil
// for children with no discoverable snapshot at construction; such children
// get a metadata entry but no composite slice until their first notification.
type Child struct {
	Kind  Kind
	Name  string
	State any

	// Modern surface: per-field descriptors, copied verbatim into the
	// composite metadata.
	Metadata map[string]Descriptor

	// Legacy surface.
	DefaultState  any
	Config        any
	DefaultConfig any
	Disabled      bool
	Listen        func(Listener)

	// HasMessenger marks children that expose their own messaging handle.
	// A legacy child with a messaging handle is bridged over the bus
	// instead of through its Listen hook.
	HasMessenger bool
}

// Modern adapts a bus-notified component into a Child. The metadata map is
// the component's own per-field descriptors and may be empty.
func Modern(name string, state any, metadata map[string]Descriptor) Child {
	return Child{
		Kind:         KindModern,
		Name:         name,
		State:        state,
		Metadata:     metadata,
		HasMessenger: true,
	}
}

// LegacyConfig mirrors the legacy child surface for adaptation.
// This config struct replaces a long positional constructor signature.
type LegacyConfig struct {
	Name          string         // Component name (unique within one composite)
	State         any            // Current state snapshot
	DefaultState  any            // Factory-default state
	Config        any            // Current configuration
	DefaultConfig any            // Factory-default configuration
	Disabled      bool           // Whether the component is disabled
	Listen        func(Listener) // Registers a direct state listener
	HasMessenger  bool           // Component also exposes a messaging handle
}

// Legacy adapts a callback-notified component into a Child.
func Legacy(cfg LegacyConfig) Child {
	return Child{
		Kind:          KindLegacy,
		Name:          cfg.Name,
		State:         cfg.State,
		DefaultState:  cfg.DefaultState,
		Config:        cfg.Config,
		DefaultConfig: cfg.DefaultConfig,
		Disabled:      cfg.Disabled,
		Listen:        cfg.Listen,
		HasMessenger:  cfg.HasMessenger,
	}
}

// MaxNameLength bounds child names for safety
const MaxNameLength = 1024

// ValidateName validates child component names
func ValidateName(name string) error {
	if name == "" {
		return errors.WrapValidation(errors.ErrInvalidChildName, "Child", "ValidateName", "empty name")
	}
	if len(name) > MaxNameLength {
		return errors.WrapValidation(errors.ErrInvalidChildName, "Child", "ValidateName", "name too long")
	}
	// Allow alphanumeric, dash, underscore, dot
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.') {
			return errors.WrapValidation(
				errors.ErrInvalidChildName, "Child", "ValidateName", "invalid name characters")
		}
	}
	return nil
}

// Validate checks that the child satisfies a recognized contract.
func (c Child) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}

	switch c.Kind {
	case KindModern:
		return nil
	case KindLegacy:
		if c.Listen == nil && !c.HasMessenger {
			msg := fmt.Errorf("legacy child %q has no listen hook and no messaging handle", c.Name)
			return errors.WrapValidation(msg, "Child", "Validate", "legacy contract check")
		}
		return nil
	default:
		// A bare messaging handle with no state-carrying shape is not a
		// recognized contract either.
		return errors.WrapValidation(errors.ErrUnknownChildKind, "Child", "Validate", "contract check")
	}
}
