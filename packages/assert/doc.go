// Package assert provides the base assertion engine for verity tests.
//
// It owns the fundamental check-and-report primitive shared by the API and
// UI assertion engines:
//   - Hard assertions that fail immediately with a *FailureError
//   - Soft assertions that record failures in a per-engine buffer so the
//     test keeps running and reports everything at the end
//   - Per-call options (message override, timeout, soft, screenshot) merged
//     over engine defaults, call site winning
//   - Generic comparison helpers (equality, containment, length, dates
//     within a tolerance window)
//
// An Engine is owned by a single test context and is not safe for use from
// multiple goroutines; construct one per test to keep soft-failure buffers
// from interleaving across parallel tests.
package assert
