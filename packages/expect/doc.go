// Package expect is the composition root for verity's assertion engines.
//
// An Expect instance is constructed per test context and owns one base, one
// API and one UI assertion engine, each with its own soft-failure buffer.
// Shorthand methods (Visible, Text, URL, Status, ...) merge call-site
// options over the facade defaults and forward to the matching engine
// through a single dispatcher keyed by operation tag, so the option-merge
// logic lives in exactly one place.
//
// Tests running in parallel must each construct their own Expect; sharing
// one would interleave unrelated soft failures.
package expect
