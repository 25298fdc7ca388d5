// Package testutil provides test utilities for StateKit: an in-memory
// messaging bus with synchronous dispatch and scripted child components.
// No transport, no domain knowledge.
package testutil
