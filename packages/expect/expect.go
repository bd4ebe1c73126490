package expect

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verityhq/verity/packages/apiassert"
	"github.com/verityhq/verity/packages/assert"
	"github.com/verityhq/verity/packages/uiassert"
)

// Expect composes the three assertion engines with inherited defaults. One
// instance per test context.
type Expect struct {
	id       string
	defaults assert.Options

	base *assert.Engine
	api  *apiassert.Engine
	ui   *uiassert.Engine

	log *zap.Logger
}

type config struct {
	timeout             time.Duration
	soft                bool
	screenshotOnFailure bool
	artifact            assert.ArtifactFunc
	requester           apiassert.Requester
	pollInterval        time.Duration
	log                 *zap.Logger
}

// Option configures an Expect at construction time.
type Option func(*config)

// WithDefaultTimeout sets the default polling timeout inherited by every
// assertion call.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithSoftMode makes every assertion soft unless a call overrides it.
func WithSoftMode(soft bool) Option {
	return func(c *config) {
		c.soft = soft
	}
}

// WithScreenshotOnFailure enables artifact capture on every failure, using
// the supplied capability (see uidriver.Screenshotter).
func WithScreenshotOnFailure(artifact assert.ArtifactFunc) Option {
	return func(c *config) {
		c.screenshotOnFailure = artifact != nil
		c.artifact = artifact
	}
}

// WithRequester supplies the request-issuing capability for endpoint checks.
func WithRequester(r apiassert.Requester) Option {
	return func(c *config) {
		c.requester = r
	}
}

// WithPollInterval sets the UI polling interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithLogger sets the structured logger shared by all engines.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// New constructs a facade with fresh engines and empty soft buffers.
func New(opts ...Option) *Expect {
	c := &config{
		timeout:      uiassert.DefaultTimeout,
		pollInterval: uiassert.DefaultPollInterval,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	defaults := assert.Options{Timeout: c.timeout}
	if c.soft {
		defaults.Soft = assert.BoolPtr(true)
	}
	if c.screenshotOnFailure {
		defaults.Screenshot = assert.BoolPtr(true)
	}

	newBase := func() *assert.Engine {
		return assert.New(
			assert.WithDefaults(defaults),
			assert.WithArtifactFunc(c.artifact),
			assert.WithLogger(c.log),
		)
	}

	return &Expect{
		id:       uuid.NewString(),
		defaults: defaults,
		base:     newBase(),
		api: apiassert.New(newBase(),
			apiassert.WithRequester(c.requester),
			apiassert.WithLogger(c.log)),
		ui: uiassert.New(newBase(),
			uiassert.WithPollInterval(c.pollInterval),
			uiassert.WithLogger(c.log)),
		log: c.log,
	}
}

// ID identifies this test context in logs and artifacts.
func (x *Expect) ID() string {
	return x.id
}

// Base exposes the generic value-assertion engine.
func (x *Expect) Base() *assert.Engine {
	return x.base
}

// API exposes the HTTP response assertion engine.
func (x *Expect) API() *apiassert.Engine {
	return x.api
}

// UI exposes the element-state assertion engine.
func (x *Expect) UI() *uiassert.Engine {
	return x.ui
}

// GetSoftAssertionFailures merges the engines' buffers in engine order
// (base, API, UI), preserving each buffer's chronological order.
func (x *Expect) GetSoftAssertionFailures() []assert.SoftFailure {
	var out []assert.SoftFailure
	out = append(out, x.base.SoftFailures()...)
	out = append(out, x.api.SoftFailures()...)
	out = append(out, x.ui.SoftFailures()...)
	return out
}

// ClearSoftAssertionFailures empties all three buffers, for reuse between
// test cases.
func (x *Expect) ClearSoftAssertionFailures() {
	x.base.ClearSoftFailures()
	x.api.ClearSoftFailures()
	x.ui.ClearSoftFailures()
}

// AssertAllSoftAssertionsPassed is the deferred-failure flush point a test
// calls at its end: if any soft failures were recorded it raises one hard
// failure listing every message.
func (x *Expect) AssertAllSoftAssertionsPassed() error {
	failures := x.GetSoftAssertionFailures()
	if len(failures) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("soft assertion failures:")
	for _, f := range failures {
		b.WriteString("\n- ")
		b.WriteString(f.Message)
	}
	x.log.Debug("flushing soft assertion failures",
		zap.String("context", x.id),
		zap.Int("count", len(failures)))
	return &assert.FailureError{Message: b.String()}
}

// merge folds an optional call-site Options over the facade defaults,
// call site winning. Every shorthand goes through here exactly once.
func (x *Expect) merge(opts []*assert.Options) *assert.Options {
	var callSite *assert.Options
	if len(opts) > 0 {
		callSite = opts[0]
	}
	return x.defaults.Merge(callSite)
}
