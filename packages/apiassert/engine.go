package apiassert

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/verityhq/verity/packages/assert"
	httpkit "github.com/verityhq/verity/packages/http"
	"github.com/verityhq/verity/packages/schema"
)

// securityHeaders is the fixed set every hardened endpoint is expected to
// declare.
var securityHeaders = []string{
	"x-content-type-options",
	"x-frame-options",
	"x-xss-protection",
	"strict-transport-security",
}

// Requester issues the request for endpoint-availability checks. It is a
// capability supplied by whatever HTTP client the test uses.
type Requester interface {
	Request(ctx context.Context, method, url string) (*httpkit.Response, error)
}

// Engine asserts properties of an HTTP response abstraction and reports
// failures through the base engine's soft/hard policy. It reads responses,
// never retains them.
type Engine struct {
	base      *assert.Engine
	requester Requester
	perf      *PerfRecorder
	log       *zap.Logger
}

type EngineOption func(*Engine)

// WithRequester supplies the request-issuing capability used by
// AssertEndpointAvailable.
func WithRequester(r Requester) EngineOption {
	return func(e *Engine) {
		e.requester = r
	}
}

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an API assertion engine on top of a base engine.
func New(base *assert.Engine, opts ...EngineOption) *Engine {
	e := &Engine{
		base: base,
		perf: NewPerfRecorder(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Base exposes the underlying assertion engine.
func (e *Engine) Base() *assert.Engine {
	return e.base
}

// SoftFailures returns the engine's recorded soft failures in order.
func (e *Engine) SoftFailures() []assert.SoftFailure {
	return e.base.SoftFailures()
}

// ClearSoftFailures empties the engine's soft-failure buffer.
func (e *Engine) ClearSoftFailures() {
	e.base.ClearSoftFailures()
}

// Expectation is a composable description of what a response should look
// like. Zero-valued fields are not checked.
type Expectation struct {
	StatusCode   int
	ContentType  string        // substring match against Content-Type
	MaxDuration  time.Duration // time-to-last-byte ceiling
	Headers      map[string]string
	ValidateJSON bool
	Schema       *schema.Node // structural validation of the parsed body
	JSONSchema   []byte       // raw JSON Schema document, validated via gojsonschema
}

// AssertResponse evaluates every independent expectation against resp and
// reports all mismatches as one combined failure.
//
// A body that fails to parse as JSON is returned as a hard failure even in
// soft mode: a response that cannot even be read invalidates the rest of the
// test.
func (e *Engine) AssertResponse(resp *httpkit.Response, want Expectation, opts *assert.Options) error {
	e.perf.Record(resp.Duration)

	var reasons []string

	if want.StatusCode != 0 && resp.StatusCode != want.StatusCode {
		reasons = append(reasons,
			fmt.Sprintf("expected status %d, got %d", want.StatusCode, resp.StatusCode))
	}
	if want.ContentType != "" && !strings.Contains(resp.ContentType(), want.ContentType) {
		reasons = append(reasons,
			fmt.Sprintf("expected content type to contain %q, got %q", want.ContentType, resp.ContentType()))
	}
	if want.MaxDuration > 0 && resp.Duration > want.MaxDuration {
		reasons = append(reasons,
			fmt.Sprintf("response took %s, exceeding limit %s", resp.Duration, want.MaxDuration))
	}

	for _, name := range sortedKeys(want.Headers) {
		wantValue := want.Headers[name]
		if got := resp.Header(name); got != wantValue {
			reasons = append(reasons,
				fmt.Sprintf("expected header %s=%q, got %q", name, wantValue, got))
		}
	}

	if want.ValidateJSON && resp.IsJSON() {
		body, err := resp.BodyJSON()
		if err != nil {
			return &assert.FailureError{
				Message: fmt.Sprintf("response body is not valid JSON: %v", err),
			}
		}
		if want.Schema != nil {
			result := schema.Validate(body, want.Schema)
			for _, verr := range result.Errors {
				reasons = append(reasons, "schema: "+verr)
			}
		}
	}

	if len(want.JSONSchema) > 0 {
		reasons = append(reasons, e.jsonSchemaReasons(resp, want.JSONSchema)...)
	}

	return e.assertReasons(reasons, opts)
}

// AssertResponseSchema validates the body against a raw JSON Schema document.
func (e *Engine) AssertResponseSchema(resp *httpkit.Response, schemaDoc []byte, opts *assert.Options) error {
	return e.assertReasons(e.jsonSchemaReasons(resp, schemaDoc), opts)
}

func (e *Engine) jsonSchemaReasons(resp *httpkit.Response, schemaDoc []byte) []string {
	schemaLoader := gojsonschema.NewBytesLoader(schemaDoc)
	documentLoader := gojsonschema.NewBytesLoader(resp.Body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return []string{fmt.Sprintf("schema validation error: %v", err)}
	}
	if result.Valid() {
		return nil
	}
	var reasons []string
	for _, desc := range result.Errors() {
		reasons = append(reasons, "schema: "+desc.String())
	}
	return reasons
}

// AssertEndpointAvailable issues a request through the injected capability
// and reuses AssertResponse on the result. A transport failure is recorded
// (so soft mode still captures it for the end-of-test summary) and then
// raised regardless of mode: an unreachable endpoint invalidates the rest of
// the test.
func (e *Engine) AssertEndpointAvailable(ctx context.Context, method, url string, opts *assert.Options) error {
	if e.requester == nil {
		return &assert.FailureError{Message: "no request capability configured"}
	}

	resp, err := e.requester.Request(ctx, method, url)
	if err != nil {
		msg := fmt.Sprintf("endpoint %s %s unreachable: %v", method, url, err)
		if aerr := e.base.Assert(false, msg, opts); aerr != nil {
			return aerr
		}
		return &assert.FailureError{Message: msg}
	}

	e.log.Debug("endpoint responded",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", resp.Duration))

	return e.AssertResponse(resp, Expectation{StatusCode: 200}, opts)
}

// AssertResponseContains resolves each expected key through dotted-path
// lookup ("data.user.id") and compares the found value. Mismatches are
// reported per field in one combined failure.
func (e *Engine) AssertResponseContains(resp *httpkit.Response, expected map[string]any, opts *assert.Options) error {
	if !gjson.ValidBytes(resp.Body) {
		return &assert.FailureError{Message: "response body is not valid JSON"}
	}
	body := gjson.ParseBytes(resp.Body)

	var reasons []string
	for _, path := range sortedKeys(expected) {
		want := expected[path]
		got := body.Get(path)
		if !got.Exists() {
			reasons = append(reasons, fmt.Sprintf("field %q not found in response body", path))
			continue
		}
		if !assert.LooseEqual(got.Value(), want) {
			reasons = append(reasons,
				fmt.Sprintf("field %q: expected %v, got %v", path, want, got.Value()))
		}
	}
	return e.assertReasons(reasons, opts)
}

// APIError describes an error-shaped response. Zero-valued fields are not
// checked.
type APIError struct {
	StatusCode      int
	Code            string // looked up at body.code, then body.error.code
	MessageContains string // looked up at body.message, then body.error.message
}

// AssertAPIError validates an error response's status, error code and
// message.
func (e *Engine) AssertAPIError(resp *httpkit.Response, want APIError, opts *assert.Options) error {
	var reasons []string

	if want.StatusCode != 0 && resp.StatusCode != want.StatusCode {
		reasons = append(reasons,
			fmt.Sprintf("expected status %d, got %d", want.StatusCode, resp.StatusCode))
	}

	if want.Code != "" || want.MessageContains != "" {
		if !gjson.ValidBytes(resp.Body) {
			return &assert.FailureError{Message: "error response body is not valid JSON"}
		}
		body := gjson.ParseBytes(resp.Body)

		if want.Code != "" {
			code := firstExisting(body, "code", "error.code")
			if !code.Exists() {
				reasons = append(reasons, "no error code found at code or error.code")
			} else if code.String() != want.Code {
				reasons = append(reasons,
					fmt.Sprintf("expected error code %q, got %q", want.Code, code.String()))
			}
		}
		if want.MessageContains != "" {
			msg := firstExisting(body, "message", "error.message")
			if !msg.Exists() {
				reasons = append(reasons, "no error message found at message or error.message")
			} else if !strings.Contains(msg.String(), want.MessageContains) {
				reasons = append(reasons,
					fmt.Sprintf("expected error message to contain %q, got %q", want.MessageContains, msg.String()))
			}
		}
	}

	return e.assertReasons(reasons, opts)
}

// AssertResponsePerformance asserts the time-to-last-byte ceiling and feeds
// the latency into the percentile recorder.
func (e *Engine) AssertResponsePerformance(resp *httpkit.Response, max time.Duration, opts *assert.Options) error {
	e.perf.Record(resp.Duration)
	return e.base.Assert(resp.Duration <= max,
		fmt.Sprintf("response took %s, exceeding limit %s", resp.Duration, max), opts)
}

// AssertResponseSize asserts the payload does not exceed maxBytes.
func (e *Engine) AssertResponseSize(resp *httpkit.Response, maxBytes int, opts *assert.Options) error {
	size := resp.Size()
	return e.base.Assert(size <= maxBytes,
		fmt.Sprintf("response size %d bytes exceeds limit %d", size, maxBytes), opts)
}

// AssertCachingHeaders asserts Cache-Control is declared and carries each of
// the wanted directives.
func (e *Engine) AssertCachingHeaders(resp *httpkit.Response, directives []string, opts *assert.Options) error {
	cc := resp.Header("Cache-Control")
	if cc == "" {
		return e.base.Assert(false, "missing Cache-Control header", opts)
	}

	var missing []string
	for _, d := range directives {
		if !strings.Contains(cc, d) {
			missing = append(missing, d)
		}
	}
	return e.base.Assert(len(missing) == 0,
		fmt.Sprintf("Cache-Control %q is missing directives: %s", cc, strings.Join(missing, ", ")), opts)
}

// AssertSecurityHeaders asserts the fixed list of security headers is
// declared; missing ones are reported as a joined list.
func (e *Engine) AssertSecurityHeaders(resp *httpkit.Response, opts *assert.Options) error {
	var missing []string
	for _, name := range securityHeaders {
		if resp.Header(name) == "" {
			missing = append(missing, name)
		}
	}
	return e.base.Assert(len(missing) == 0,
		"missing security headers: "+strings.Join(missing, ", "), opts)
}

// assertReasons reports all gathered reasons as a single combined failure,
// one Assert call per engine call.
func (e *Engine) assertReasons(reasons []string, opts *assert.Options) error {
	if len(reasons) == 0 {
		return nil
	}
	return e.base.Assert(false, "- "+strings.Join(reasons, "\n- "), opts)
}

func firstExisting(body gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := body.Get(p); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
