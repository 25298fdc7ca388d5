// Package errors provides standardized error handling patterns for StateKit.
//
// # Overview
//
// The errors package implements a three-class error classification system for
// state composition: Configuration (composer wiring failed before any side
// effects), Validation (a supplied child matched no recognized contract), and
// Transient (transport-level failures that may be retried).
//
// The classification system integrates with Go's standard error handling
// patterns, supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if m == nil {
//	    return errors.ErrMissingMessenger
//	}
//
// Wrap errors with context for debugging:
//
//	if err := m.Subscribe(topic, handler); err != nil {
//	    return errors.Wrap(err, "Composer", "New", "subscription bridging")
//	}
//
// Check classification for handling decisions:
//
//	if errors.IsConfiguration(err) {
//	    // No partial state exists; safe to discard and reconfigure.
//	}
//	if errors.IsValidation(err) {
//	    // Subscriptions registered for earlier children remain active.
//	}
package errors
