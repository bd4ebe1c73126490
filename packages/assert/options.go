package assert

import "time"

// Options configures a single assertion call. A nil *Options is valid and
// means "use the engine defaults".
type Options struct {
	Message    string        // overrides the generated failure text
	Timeout    time.Duration // upper bound for polling-style checks, ignored elsewhere
	Soft       *bool         // defer the failure to the soft buffer instead of raising
	Screenshot *bool         // capture a diagnostic artifact on failure
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil.
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// Merge merges another set of options over this one, with other taking
// precedence. Neither receiver nor argument is mutated.
func (o *Options) Merge(other *Options) *Options {
	result := Options{}
	if o != nil {
		result = *o
	}
	if other == nil {
		return &result
	}
	if other.Message != "" {
		result.Message = other.Message
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.Soft != nil {
		result.Soft = other.Soft
	}
	if other.Screenshot != nil {
		result.Screenshot = other.Screenshot
	}
	return &result
}

// GetSoft returns the soft setting, or the default if unset.
func (o *Options) GetSoft(defaultVal bool) bool {
	if o == nil {
		return defaultVal
	}
	return getBool(o.Soft, defaultVal)
}

// GetScreenshot returns the screenshot setting, or the default if unset.
func (o *Options) GetScreenshot(defaultVal bool) bool {
	if o == nil {
		return defaultVal
	}
	return getBool(o.Screenshot, defaultVal)
}

// GetTimeout returns the timeout, or the default if unset.
func (o *Options) GetTimeout(defaultVal time.Duration) time.Duration {
	if o == nil || o.Timeout <= 0 {
		return defaultVal
	}
	return o.Timeout
}

// FailureText returns the message override if present, otherwise fallback.
func (o *Options) FailureText(fallback string) string {
	if o == nil || o.Message == "" {
		return fallback
	}
	return o.Message
}
