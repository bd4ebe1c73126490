package expect

import (
	"context"
	"time"

	"github.com/verityhq/verity/packages/apiassert"
	"github.com/verityhq/verity/packages/assert"
	httpkit "github.com/verityhq/verity/packages/http"
	"github.com/verityhq/verity/packages/schema"
	"github.com/verityhq/verity/packages/uiassert"
)

// elementOp tags the no-argument UI state conditions. The public shorthands
// are thin typed wrappers over one dispatcher so the option merge is written
// once instead of once per method.
type elementOp int

const (
	opVisible elementOp = iota
	opHidden
	opEnabled
	opDisabled
	opChecked
	opUnchecked
	opFocused
	opInViewport
	opNotInViewport
	opEmpty
	opNotEmpty
)

// element dispatches a tagged state condition with merged options.
func (x *Expect) element(ctx context.Context, op elementOp, el uiassert.Element, opts []*assert.Options) error {
	o := x.merge(opts)
	switch op {
	case opVisible:
		return x.ui.Visible(ctx, el, o)
	case opHidden:
		return x.ui.Hidden(ctx, el, o)
	case opEnabled:
		return x.ui.Enabled(ctx, el, o)
	case opDisabled:
		return x.ui.Disabled(ctx, el, o)
	case opChecked:
		return x.ui.Checked(ctx, el, o)
	case opUnchecked:
		return x.ui.Unchecked(ctx, el, o)
	case opFocused:
		return x.ui.Focused(ctx, el, o)
	case opInViewport:
		return x.ui.InViewport(ctx, el, o)
	case opNotInViewport:
		return x.ui.NotInViewport(ctx, el, o)
	case opEmpty:
		return x.ui.Empty(ctx, el, o)
	case opNotEmpty:
		return x.ui.NotEmpty(ctx, el, o)
	default:
		return &assert.FailureError{Message: "unknown element operation"}
	}
}

// UI state shorthands.

func (x *Expect) Visible(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opVisible, el, opts)
}

func (x *Expect) Hidden(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opHidden, el, opts)
}

func (x *Expect) Enabled(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opEnabled, el, opts)
}

func (x *Expect) Disabled(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opDisabled, el, opts)
}

func (x *Expect) Checked(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opChecked, el, opts)
}

func (x *Expect) Unchecked(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opUnchecked, el, opts)
}

func (x *Expect) Focused(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opFocused, el, opts)
}

func (x *Expect) InViewport(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opInViewport, el, opts)
}

func (x *Expect) NotInViewport(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opNotInViewport, el, opts)
}

func (x *Expect) EmptyElement(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opEmpty, el, opts)
}

func (x *Expect) NotEmptyElement(ctx context.Context, el uiassert.Element, opts ...*assert.Options) error {
	return x.element(ctx, opNotEmpty, el, opts)
}

// UI value shorthands.

func (x *Expect) Text(ctx context.Context, el uiassert.Element, expected string, opts ...*assert.Options) error {
	return x.ui.Text(ctx, el, expected, x.merge(opts))
}

func (x *Expect) TextContains(ctx context.Context, el uiassert.Element, expected string, opts ...*assert.Options) error {
	return x.ui.TextContains(ctx, el, expected, x.merge(opts))
}

func (x *Expect) TextMatches(ctx context.Context, el uiassert.Element, pattern string, opts ...*assert.Options) error {
	return x.ui.TextMatches(ctx, el, pattern, x.merge(opts))
}

func (x *Expect) Attribute(ctx context.Context, el uiassert.Element, name, want string, opts ...*assert.Options) error {
	return x.ui.Attribute(ctx, el, name, want, x.merge(opts))
}

func (x *Expect) Style(ctx context.Context, el uiassert.Element, property, want string, opts ...*assert.Options) error {
	return x.ui.Style(ctx, el, property, want, x.merge(opts))
}

func (x *Expect) Count(ctx context.Context, loc uiassert.Locator, want int, opts ...*assert.Options) error {
	return x.ui.Count(ctx, loc, want, x.merge(opts))
}

// API shorthands.

func (x *Expect) Status(resp *httpkit.Response, want int, opts ...*assert.Options) error {
	return x.api.AssertResponse(resp, apiassert.Expectation{StatusCode: want}, x.merge(opts))
}

func (x *Expect) Response(resp *httpkit.Response, want apiassert.Expectation, opts ...*assert.Options) error {
	return x.api.AssertResponse(resp, want, x.merge(opts))
}

func (x *Expect) ResponseTime(resp *httpkit.Response, max time.Duration, opts ...*assert.Options) error {
	return x.api.AssertResponsePerformance(resp, max, x.merge(opts))
}

func (x *Expect) JSON(resp *httpkit.Response, expected map[string]any, opts ...*assert.Options) error {
	return x.api.AssertResponseContains(resp, expected, x.merge(opts))
}

func (x *Expect) APIError(resp *httpkit.Response, want apiassert.APIError, opts ...*assert.Options) error {
	return x.api.AssertAPIError(resp, want, x.merge(opts))
}

func (x *Expect) Schema(resp *httpkit.Response, node *schema.Node, opts ...*assert.Options) error {
	return x.api.AssertResponse(resp, apiassert.Expectation{ValidateJSON: true, Schema: node}, x.merge(opts))
}

func (x *Expect) SecurityHeaders(resp *httpkit.Response, opts ...*assert.Options) error {
	return x.api.AssertSecurityHeaders(resp, x.merge(opts))
}

func (x *Expect) CachingHeaders(resp *httpkit.Response, directives []string, opts ...*assert.Options) error {
	return x.api.AssertCachingHeaders(resp, directives, x.merge(opts))
}

func (x *Expect) ResponseSize(resp *httpkit.Response, maxBytes int, opts ...*assert.Options) error {
	return x.api.AssertResponseSize(resp, maxBytes, x.merge(opts))
}

func (x *Expect) EndpointAvailable(ctx context.Context, method, url string, opts ...*assert.Options) error {
	return x.api.AssertEndpointAvailable(ctx, method, url, x.merge(opts))
}

// Generic value shorthands.

func (x *Expect) Equal(actual, expected any, opts ...*assert.Options) error {
	return x.base.Equal(actual, expected, x.merge(opts))
}

func (x *Expect) ContainsText(haystack, needle string, opts ...*assert.Options) error {
	return x.base.Contains(haystack, needle, x.merge(opts))
}

func (x *Expect) URL(actual, expected string, opts ...*assert.Options) error {
	return x.base.URLEquals(actual, expected, x.merge(opts))
}

func (x *Expect) Title(actual, expected string, opts ...*assert.Options) error {
	return x.base.TitleEquals(actual, expected, x.merge(opts))
}

func (x *Expect) Field(name string, actual, expected any, opts ...*assert.Options) error {
	return x.base.FieldEquals(name, actual, expected, x.merge(opts))
}

func (x *Expect) DatesWithin(actual, expected time.Time, tolerance time.Duration, opts ...*assert.Options) error {
	return x.base.DatesEqualWithin(actual, expected, tolerance, x.merge(opts))
}
