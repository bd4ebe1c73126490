package assert

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// SoftFailure is one recorded deferred assertion failure. It is created once
// when the failing check is evaluated and never mutated afterwards.
type SoftFailure struct {
	Message   string
	Timestamp time.Time
}

// FailureError is the unit of test failure raised by hard assertions.
type FailureError struct {
	Message string
}

func (e *FailureError) Error() string {
	return e.Message
}

// IsFailure reports whether err is (or wraps) an assertion failure.
func IsFailure(err error) bool {
	var fe *FailureError
	return errors.As(err, &fe)
}

// ArtifactFunc captures a diagnostic artifact (typically a screenshot) when
// an assertion fails with the screenshot option enabled. The engine only
// invokes it; producing the artifact is the caller's capability.
type ArtifactFunc func(message string)

// Engine evaluates boolean conditions and either raises or records failures.
//
// Not safe for concurrent use: one Engine per test context.
type Engine struct {
	defaults Options
	artifact ArtifactFunc
	log      *zap.Logger
	soft     []SoftFailure
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDefaults sets the engine-level default options merged under every call.
func WithDefaults(o Options) EngineOption {
	return func(e *Engine) {
		e.defaults = o
	}
}

// WithArtifactFunc sets the failure artifact hook.
func WithArtifactFunc(f ArtifactFunc) EngineOption {
	return func(e *Engine) {
		e.artifact = f
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

// New creates an assertion engine with an empty soft-failure buffer.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assert evaluates condition. A true condition is a no-op. A false condition
// either returns a *FailureError (hard mode) or appends a SoftFailure to the
// buffer and returns nil (soft mode), so later independent checks in the same
// test still run.
func (e *Engine) Assert(condition bool, message string, opts *Options) error {
	if condition {
		return nil
	}
	merged := e.defaults.Merge(opts)
	msg := merged.FailureText(message)

	if merged.GetScreenshot(false) && e.artifact != nil {
		e.artifact(msg)
	}

	if merged.GetSoft(false) {
		e.soft = append(e.soft, SoftFailure{Message: msg, Timestamp: time.Now()})
		e.log.Debug("recorded soft assertion failure",
			zap.String("message", msg),
			zap.Int("buffered", len(e.soft)))
		return nil
	}
	return &FailureError{Message: msg}
}

// Fail reports an unconditional failure through the soft/hard policy.
func (e *Engine) Fail(message string, opts *Options) error {
	return e.Assert(false, message, opts)
}

// SoftFailures returns a read-only snapshot of the buffer in record order.
func (e *Engine) SoftFailures() []SoftFailure {
	out := make([]SoftFailure, len(e.soft))
	copy(out, e.soft)
	return out
}

// ClearSoftFailures empties the buffer. Call between test cases to avoid
// cross-test leakage.
func (e *Engine) ClearSoftFailures() {
	e.soft = nil
}

// Defaults returns the engine-level default options.
func (e *Engine) Defaults() Options {
	return e.defaults
}
