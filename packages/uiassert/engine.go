package uiassert

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/verityhq/verity/packages/assert"
)

const (
	// DefaultTimeout bounds a poll when neither the call nor the engine
	// defaults specify one.
	DefaultTimeout = 5 * time.Second
	// DefaultPollInterval paces condition re-evaluation.
	DefaultPollInterval = 100 * time.Millisecond
)

// Engine asserts observable UI element state through bounded polling.
type Engine struct {
	base         *assert.Engine
	pollInterval time.Duration
	log          *zap.Logger
}

type EngineOption func(*Engine)

// WithPollInterval sets how often a pending condition is re-evaluated.
func WithPollInterval(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.pollInterval = d
		}
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

// New creates a UI assertion engine on top of a base engine.
func New(base *assert.Engine, opts ...EngineOption) *Engine {
	e := &Engine{
		base:         base,
		pollInterval: DefaultPollInterval,
		log:          zap.NewNop(),
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

// waitFor polls check until it holds, the timeout elapses, or the caller's
// context is cancelled. A timeout resolves to (false, lastErr); caller
// cancellation is returned as the context error so the test runner sees the
// abort, not an assertion failure.
func (e *Engine) waitFor(ctx context.Context, timeout time.Duration, check func() (bool, error)) (bool, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(e.pollInterval), 1)
	var lastErr error
	for {
		if err := limiter.Wait(waitCtx); err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, lastErr
		}
		ok, err := check()
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return true, nil
		}
		lastErr = nil
	}
}

// assertEventually runs one bounded poll and reports the outcome through the
// base engine. desc describes the condition ("element is visible").
func (e *Engine) assertEventually(ctx context.Context, desc string, opts *assert.Options, check func() (bool, error)) error {
	defaults := e.base.Defaults()
	timeout := defaults.Merge(opts).GetTimeout(DefaultTimeout)

	ok, err := e.waitFor(ctx, timeout, check)
	if err != nil && ctx.Err() != nil {
		return err
	}

	msg := fmt.Sprintf("%s: condition not met within %s", desc, timeout)
	if err != nil {
		msg = fmt.Sprintf("%s (last error: %v)", msg, err)
	}
	e.log.Debug("ui condition evaluated",
		zap.String("condition", desc),
		zap.Bool("ok", ok),
		zap.Duration("timeout", timeout))
	return e.base.Assert(ok, msg, opts)
}

// Visible asserts the element becomes visible.
func (e *Engine) Visible(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is visible", opts, el.Visible)
}

// Hidden asserts the element becomes hidden.
func (e *Engine) Hidden(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is hidden", opts, func() (bool, error) {
		visible, err := el.Visible()
		return !visible, err
	})
}

// Enabled asserts the element becomes enabled.
func (e *Engine) Enabled(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is enabled", opts, el.Enabled)
}

// Disabled asserts the element becomes disabled.
func (e *Engine) Disabled(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is disabled", opts, func() (bool, error) {
		enabled, err := el.Enabled()
		return !enabled, err
	})
}

// Checked asserts the element becomes checked.
func (e *Engine) Checked(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is checked", opts, el.Checked)
}

// Unchecked asserts the element becomes unchecked.
func (e *Engine) Unchecked(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is unchecked", opts, func() (bool, error) {
		checked, err := el.Checked()
		return !checked, err
	})
}

// Focused asserts the element receives focus.
func (e *Engine) Focused(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is focused", opts, el.Focused)
}

// InViewport asserts the element's bounding box lies fully inside the
// viewport.
func (e *Engine) InViewport(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is in viewport", opts, func() (bool, error) {
		return elementInViewport(el)
	})
}

// NotInViewport asserts the element's bounding box lies outside the viewport.
func (e *Engine) NotInViewport(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is outside viewport", opts, func() (bool, error) {
		in, err := elementInViewport(el)
		return !in, err
	})
}

func elementInViewport(el Element) (bool, error) {
	box, err := el.Box()
	if err != nil {
		return false, err
	}
	vp, err := el.Viewport()
	if err != nil {
		return false, err
	}
	if box.Width <= 0 || box.Height <= 0 {
		return false, nil
	}
	return vp.Contains(box), nil
}

// Empty asserts the element's text becomes empty.
func (e *Engine) Empty(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is empty", opts, func() (bool, error) {
		text, err := el.Text()
		return strings.TrimSpace(text) == "", err
	})
}

// NotEmpty asserts the element's text becomes non-empty.
func (e *Engine) NotEmpty(ctx context.Context, el Element, opts *assert.Options) error {
	return e.assertEventually(ctx, "element is not empty", opts, func() (bool, error) {
		text, err := el.Text()
		return strings.TrimSpace(text) != "", err
	})
}

// Text asserts the element's text becomes exactly expected. The failure
// message carries the last observed text.
func (e *Engine) Text(ctx context.Context, el Element, expected string, opts *assert.Options) error {
	defaults := e.base.Defaults()
	timeout := defaults.Merge(opts).GetTimeout(DefaultTimeout)

	var last string
	ok, err := e.waitFor(ctx, timeout, func() (bool, error) {
		text, terr := el.Text()
		if terr != nil {
			return false, terr
		}
		last = text
		return text == expected, nil
	})
	if err != nil && ctx.Err() != nil {
		return err
	}
	return e.base.Assert(ok,
		fmt.Sprintf("expected element text %q, got %q after %s", expected, last, timeout), opts)
}

// TextContains asserts the element's text comes to contain expected.
func (e *Engine) TextContains(ctx context.Context, el Element, expected string, opts *assert.Options) error {
	return e.assertEventually(ctx, fmt.Sprintf("element text contains %q", expected), opts, func() (bool, error) {
		text, err := el.Text()
		return strings.Contains(text, expected), err
	})
}

// TextMatches asserts the element's text comes to match a pattern.
func (e *Engine) TextMatches(ctx context.Context, el Element, pattern string, opts *assert.Options) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return e.base.Fail(fmt.Sprintf("invalid text pattern %q: %v", pattern, err), opts)
	}
	return e.assertEventually(ctx, fmt.Sprintf("element text matches /%s/", pattern), opts, func() (bool, error) {
		text, terr := el.Text()
		return re.MatchString(text), terr
	})
}

// Attribute asserts an attribute takes an exact value or, when want is a
// "/pattern/", matches it.
func (e *Engine) Attribute(ctx context.Context, el Element, name, want string, opts *assert.Options) error {
	match, err := newValueMatcher(want)
	if err != nil {
		return e.base.Fail(fmt.Sprintf("invalid attribute pattern %q: %v", want, err), opts)
	}
	return e.assertEventually(ctx, fmt.Sprintf("attribute %q is %s", name, want), opts, func() (bool, error) {
		value, ok, aerr := el.Attribute(name)
		if aerr != nil || !ok {
			return false, aerr
		}
		return match(value), nil
	})
}

// Style asserts a computed style property takes an exact value or matches a
// "/pattern/".
func (e *Engine) Style(ctx context.Context, el Element, property, want string, opts *assert.Options) error {
	match, err := newValueMatcher(want)
	if err != nil {
		return e.base.Fail(fmt.Sprintf("invalid style pattern %q: %v", want, err), opts)
	}
	return e.assertEventually(ctx, fmt.Sprintf("style %q is %s", property, want), opts, func() (bool, error) {
		value, serr := el.Style(property)
		if serr != nil {
			return false, serr
		}
		return match(value), nil
	})
}

// Count asserts the number of elements a locator resolves to. The failure
// message carries the last observed count.
func (e *Engine) Count(ctx context.Context, loc Locator, want int, opts *assert.Options) error {
	defaults := e.base.Defaults()
	timeout := defaults.Merge(opts).GetTimeout(DefaultTimeout)

	var last int
	ok, err := e.waitFor(ctx, timeout, func() (bool, error) {
		n, cerr := loc.Count()
		if cerr != nil {
			return false, cerr
		}
		last = n
		return n == want, nil
	})
	if err != nil && ctx.Err() != nil {
		return err
	}
	return e.base.Assert(ok,
		fmt.Sprintf("expected %d matching elements, got %d after %s", want, last, timeout), opts)
}

// newValueMatcher returns an exact matcher, or a regexp matcher when want is
// wrapped in slashes ("/foo.*/").
func newValueMatcher(want string) (func(string) bool, error) {
	if len(want) >= 2 && strings.HasPrefix(want, "/") && strings.HasSuffix(want, "/") {
		re, err := regexp.Compile(want[1 : len(want)-1])
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil
	}
	return func(s string) bool { return s == want }, nil
}
