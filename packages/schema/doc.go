// Package schema validates JSON-like values against a declarative node tree.
//
// Unlike a fail-fast validator it collects every violation in one pass, so a
// single call surfaces all problems in a wide payload at once. Errors are
// path qualified ("address.zipCode: String does not match pattern ...").
//
// The validator is permissive by default: properties not declared in the
// schema are never flagged. A node must carry an explicit type; use TypeAny
// to accept anything, an empty type is reported as a schema error rather
// than guessed at.
package schema
