// Package uiassert asserts observable state of UI elements.
//
// Each operation polls the element for the target condition, bounded by the
// call's timeout and paced by the engine's poll interval, and reports through
// the base assertion engine when the condition is not reached in time. A
// timeout always resolves to a failure outcome; cancelling the caller's
// context abandons the poll. There is no retry-with-backoff here; retries
// are a test-runner concern.
//
// The element itself is an abstraction supplied by the browser-automation
// driver (see packages/uidriver for the go-rod adapter); the engine consumes
// it for the duration of a single assertion and never caches it.
package uiassert
