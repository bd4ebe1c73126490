// Package http supplies the HTTP capabilities the assertion engines consume.
//
// Response is the read-only response abstraction (status, headers, body,
// timing) handed to the API assertion engine; Client is a thin wrapper over
// the standard library client that captures timing and implements the
// request-issuing capability used by endpoint-availability checks. The
// assertion engines never issue network I/O themselves.
package http
