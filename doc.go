// Package statekit aggregates the state of many independently-owned child
// components into one composite state tree and keeps that tree synchronized
// as children mutate their own state.
//
// # Philosophy: One Merged View, Zero Coupling
//
// StateKit targets applications built from many small, encapsulated state
// containers that need a single merged view without any child knowing about
// the others. Children keep full ownership of their own state and their own
// change-notification mechanism; the Composer owns only the merged tree.
//
// StateKit MUST NOT contain:
//   - A message broker implementation (NATS is the transport; see messenger)
//   - Persistence of composite state to storage
//   - Diff/patch algorithms beyond the changed-path notification payload
//   - Validation of any child's internal business logic
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│           Composer                  │  Composite state + metadata
//	│  (classify, bridge, republish)      │  Single-writer replace
//	└─────────────────────────────────────┘
//	           ↑ one subscription per child
//	┌─────────────────────────────────────┐
//	│        Child Components             │  Modern: bus-notified
//	│   (own state, own notifications)    │  Legacy: direct callback
//	└─────────────────────────────────────┘
//	           ↕ communicate via
//	┌─────────────────────────────────────┐
//	│        Messaging Bus (NATS)         │  "<name>:stateChange" topics
//	└─────────────────────────────────────┘
//
// # Integration Styles
//
// Two child shapes exist and both are expressed as an explicit tagged
// adapter (component.Child) rather than runtime shape inspection:
//
//   - Modern children publish their own state changes on the bus under
//     "<name>:stateChange" and carry per-field metadata descriptors.
//   - Legacy children register a direct listener through their own
//     subscribe hook; a legacy child that also exposes a messaging handle
//     is bridged over the bus instead.
//
// Whenever a child notifies, the Composer replaces that child's slice of
// the composite (full replace, never a deep merge) and publishes exactly
// one aggregate change notification under its own topic. The Composer
// itself satisfies the modern child contract, so composites nest.
//
// # Package Layout
//
//   - composer: the aggregation core
//   - component: the closed child contract and metadata descriptors
//   - messenger: bus contract, change payload, NATS transport
//   - natsclient: NATS connection management
//   - errors: classified error handling
//   - metric: Prometheus instrumentation
//   - config: daemon configuration
//   - testutil: in-memory bus and scripted children for tests
package statekit
