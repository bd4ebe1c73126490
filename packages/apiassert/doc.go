// Package apiassert asserts properties of HTTP responses.
//
// Every operation computes its independent checks first and reports one
// combined diagnostic ("- reason1\n- reason2") through the base assertion
// engine, so a caller sees every mismatch at once instead of one per retry.
//
// Two failures bypass the soft/hard policy and always surface as hard
// failures: a body that cannot be parsed as JSON and a request that never
// completed. Both invalidate every later check in the test.
//
// Supported checks: status code, content-type, response time ceiling,
// declared headers, structural schema validation (packages/schema), raw JSON
// Schema documents (gojsonschema), dotted-path field values, error-shaped
// bodies, payload size, caching headers, security headers, and latency
// percentiles aggregated across calls.
package apiassert
