package uiassert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	baseassert "github.com/verityhq/verity/packages/assert"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeElement is a scriptable element double. visibleAfter and friends flip
// the state after that many polls, exercising the wait loop.
type fakeElement struct {
	polls int

	visible      bool
	visibleAfter int
	enabled      bool
	checked      bool
	focused      bool
	text         string
	textAfter    string
	attrs        map[string]string
	styles       map[string]string
	box          Rect
	viewport     Rect
	err          error
}

func (f *fakeElement) Visible() (bool, error) {
	f.polls++
	if f.err != nil {
		return false, f.err
	}
	if f.visibleAfter > 0 && f.polls >= f.visibleAfter {
		return true, nil
	}
	return f.visible, nil
}

func (f *fakeElement) Enabled() (bool, error) { return f.enabled, f.err }
func (f *fakeElement) Checked() (bool, error) { return f.checked, f.err }
func (f *fakeElement) Focused() (bool, error) { return f.focused, f.err }

func (f *fakeElement) Text() (string, error) {
	f.polls++
	if f.textAfter != "" && f.polls >= 3 {
		return f.textAfter, f.err
	}
	return f.text, f.err
}

func (f *fakeElement) Attribute(name string) (string, bool, error) {
	v, ok := f.attrs[name]
	return v, ok, f.err
}

func (f *fakeElement) Style(property string) (string, error) {
	return f.styles[property], f.err
}

func (f *fakeElement) Box() (Rect, error)      { return f.box, f.err }
func (f *fakeElement) Viewport() (Rect, error) { return f.viewport, f.err }

type fakeLocator struct {
	counts []int
	calls  int
}

func (l *fakeLocator) Count() (int, error) {
	if l.calls < len(l.counts) {
		n := l.counts[l.calls]
		l.calls++
		return n, nil
	}
	return l.counts[len(l.counts)-1], nil
}

func newEngine() *Engine {
	return New(baseassert.New(), WithPollInterval(time.Millisecond))
}

func fastOpts() *baseassert.Options {
	return &baseassert.Options{Timeout: 50 * time.Millisecond}
}

func TestVisible_ImmediatelyTrue(t *testing.T) {
	e := newEngine()
	el := &fakeElement{visible: true}

	assert.NoError(t, e.Visible(context.Background(), el, fastOpts()))
	assert.Equal(t, 1, el.polls, "no extra polls once the condition holds")
}

func TestVisible_BecomesTrueWithinTimeout(t *testing.T) {
	e := newEngine()
	el := &fakeElement{visibleAfter: 4}

	assert.NoError(t, e.Visible(context.Background(), el, fastOpts()))
	assert.GreaterOrEqual(t, el.polls, 4)
}

func TestVisible_TimeoutFails(t *testing.T) {
	e := newEngine()
	el := &fakeElement{visible: false}

	err := e.Visible(context.Background(), el, fastOpts())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "element is visible")
	assert.Contains(t, err.Error(), "not met within 50ms")
}

func TestVisible_TimeoutSoftRecorded(t *testing.T) {
	e := newEngine()
	el := &fakeElement{visible: false}
	opts := &baseassert.Options{Timeout: 30 * time.Millisecond, Soft: baseassert.BoolPtr(true)}

	err := e.Visible(context.Background(), el, opts)

	assert.NoError(t, err)
	require.Len(t, e.SoftFailures(), 1)
}

func TestVisible_CallerCancellationAbandonsPoll(t *testing.T) {
	e := newEngine()
	el := &fakeElement{visible: false}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Visible(ctx, el, &baseassert.Options{Timeout: time.Second})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, baseassert.IsFailure(err), "cancellation is not an assertion failure")
}

func TestStateConditions(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	tests := []struct {
		name    string
		el      *fakeElement
		run     func(Element) error
		wantErr bool
	}{
		{"hidden passes", &fakeElement{visible: false}, func(el Element) error { return e.Hidden(ctx, el, fastOpts()) }, false},
		{"enabled passes", &fakeElement{enabled: true}, func(el Element) error { return e.Enabled(ctx, el, fastOpts()) }, false},
		{"disabled passes", &fakeElement{enabled: false}, func(el Element) error { return e.Disabled(ctx, el, fastOpts()) }, false},
		{"checked passes", &fakeElement{checked: true}, func(el Element) error { return e.Checked(ctx, el, fastOpts()) }, false},
		{"unchecked fails on checked", &fakeElement{checked: true}, func(el Element) error { return e.Unchecked(ctx, el, fastOpts()) }, true},
		{"focused passes", &fakeElement{focused: true}, func(el Element) error { return e.Focused(ctx, el, fastOpts()) }, false},
		{"empty passes on whitespace", &fakeElement{text: "  \n"}, func(el Element) error { return e.Empty(ctx, el, fastOpts()) }, false},
		{"not empty fails on blank", &fakeElement{text: ""}, func(el Element) error { return e.NotEmpty(ctx, el, fastOpts()) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(tt.el)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestText(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	t.Run("exact match", func(t *testing.T) {
		el := &fakeElement{text: "Welcome"}
		assert.NoError(t, e.Text(ctx, el, "Welcome", fastOpts()))
	})

	t.Run("becomes expected after polls", func(t *testing.T) {
		el := &fakeElement{text: "Loading...", textAfter: "Done"}
		assert.NoError(t, e.Text(ctx, el, "Done", fastOpts()))
	})

	t.Run("mismatch reports last observed text", func(t *testing.T) {
		el := &fakeElement{text: "Loading..."}
		err := e.Text(ctx, el, "Done", fastOpts())
		require.Error(t, err)
		assert.Contains(t, err.Error(), `expected element text "Done", got "Loading..."`)
	})

	t.Run("contains", func(t *testing.T) {
		el := &fakeElement{text: "Hello, world"}
		assert.NoError(t, e.TextContains(ctx, el, "world", fastOpts()))
		assert.Error(t, e.TextContains(ctx, el, "mars", fastOpts()))
	})

	t.Run("matches pattern", func(t *testing.T) {
		el := &fakeElement{text: "Order #1234"}
		assert.NoError(t, e.TextMatches(ctx, el, `Order #\d+`, fastOpts()))
		assert.Error(t, e.TextMatches(ctx, el, `^\d+$`, fastOpts()))
	})

	t.Run("invalid pattern fails without polling", func(t *testing.T) {
		el := &fakeElement{text: "x"}
		err := e.TextMatches(ctx, el, `([`, fastOpts())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid text pattern")
	})
}

func TestAttributeAndStyle(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	el := &fakeElement{
		attrs:  map[string]string{"data-state": "active", "href": "/home"},
		styles: map[string]string{"display": "flex", "color": "rgb(0, 0, 0)"},
	}

	assert.NoError(t, e.Attribute(ctx, el, "data-state", "active", fastOpts()))
	assert.Error(t, e.Attribute(ctx, el, "data-state", "inactive", fastOpts()))
	assert.Error(t, e.Attribute(ctx, el, "missing", "x", fastOpts()))

	// Pattern form.
	assert.NoError(t, e.Attribute(ctx, el, "href", "/^\\/home$/", fastOpts()))

	assert.NoError(t, e.Style(ctx, el, "display", "flex", fastOpts()))
	assert.NoError(t, e.Style(ctx, el, "color", "/rgb\\(0, 0, 0\\)/", fastOpts()))
	assert.Error(t, e.Style(ctx, el, "display", "none", fastOpts()))
}

func TestViewportMembership(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	viewport := Rect{X: 0, Y: 0, Width: 1280, Height: 720}

	inside := &fakeElement{box: Rect{X: 100, Y: 100, Width: 200, Height: 50}, viewport: viewport}
	assert.NoError(t, e.InViewport(ctx, inside, fastOpts()))
	assert.Error(t, e.NotInViewport(ctx, inside, fastOpts()))

	below := &fakeElement{box: Rect{X: 100, Y: 800, Width: 200, Height: 50}, viewport: viewport}
	assert.Error(t, e.InViewport(ctx, below, fastOpts()))
	assert.NoError(t, e.NotInViewport(ctx, below, fastOpts()))

	zeroSized := &fakeElement{box: Rect{X: 10, Y: 10}, viewport: viewport}
	assert.Error(t, e.InViewport(ctx, zeroSized, fastOpts()), "zero-sized boxes are never in viewport")
}

func TestCount(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	t.Run("eventually reaches expected count", func(t *testing.T) {
		loc := &fakeLocator{counts: []int{0, 1, 3}}
		assert.NoError(t, e.Count(ctx, loc, 3, fastOpts()))
	})

	t.Run("mismatch reports last observed count", func(t *testing.T) {
		loc := &fakeLocator{counts: []int{2}}
		err := e.Count(ctx, loc, 5, fastOpts())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 5 matching elements, got 2")
	})
}

func TestProbeErrorsSurfaceInMessage(t *testing.T) {
	e := newEngine()
	el := &fakeElement{err: errors.New("stale element handle")}

	err := e.Enabled(context.Background(), el, fastOpts())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stale element handle")
}

func TestRectContains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	assert.True(t, outer.Contains(Rect{X: 10, Y: 10, Width: 20, Height: 20}))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(Rect{X: 90, Y: 90, Width: 20, Height: 20}))
	assert.False(t, outer.Contains(Rect{X: -1, Y: 0, Width: 10, Height: 10}))
}
