// Package composer aggregates child component state into one composite
// state tree and keeps it synchronized as children change.
//
// # Overview
//
// A Composer is built once from an ordered list of adapted children
// (component.Child) and a messenger handle. Construction:
//
//  1. Folds composite metadata: modern children's per-field descriptors are
//     copied verbatim, everything else gets the synthesized default
//     descriptor.
//  2. Folds composite state: one slice per child with a discoverable state
//     snapshot, insertion order following the supplied order.
//  3. Registers the composite as its own state owner with the messenger,
//     when the messenger supports registration.
//  4. Bridges one durable subscription per child: modern children (and
//     legacy children with a messaging handle) are observed on the bus
//     under "<name>:stateChange"; plain legacy children are observed
//     through their own listen hook.
//
// After construction the child set is immutable. Every child notification
// replaces that child's slice in full (never a deep merge) and republishes
// exactly one aggregate notification under "<composer name>:stateChange".
// Replace and republish are serialized through a single entry point, so
// concurrent notification sources cannot interleave.
//
// # Known Limitation
//
// Subscription bridging is a constructor-time side effect with no rollback:
// when a later child in the list is invalid, subscriptions already
// registered for earlier children remain active even though construction
// fails. Callers that construct from untrusted child lists should validate
// children up front or discard the messenger on failure.
package composer
