// Package component defines the closed child contract used by the composer.
//
// # Overview
//
// Every component composed into an aggregate is expressed as a Child value:
// an explicit tagged adapter carrying the component's name, state snapshot,
// metadata, and notification capabilities. The tag (Kind) and capability
// flags are set by adapter constructors at composition time, so the composer
// never inspects runtime shapes and never uses reflection to decide which
// integration path applies.
//
// # Adapter Registration Pattern
//
// StateKit uses EXPLICIT adaptation rather than duck-typed discovery:
//
//  1. Callers wrap each component with Modern() or Legacy()
//  2. The Kind tag and HasMessenger capability flag record the contract
//  3. The composer classifies purely on the tag and flags
//
// A Child whose Kind is KindUnknown matches no recognized contract and is
// rejected at composition time, even when it carries a messaging handle.
//
// Example adaptation:
//
//	children := []component.Child{
//		component.Modern("checkout", checkout.State(), checkout.Metadata()),
//		component.Legacy(component.LegacyConfig{
//			Name:   "cart",
//			State:  cart.State(),
//			Listen: cart.Subscribe,
//		}),
//	}
package component
