package assert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_MergeCallSiteWins(t *testing.T) {
	defaults := &Options{
		Message:    "default message",
		Timeout:    5 * time.Second,
		Soft:       BoolPtr(true),
		Screenshot: BoolPtr(true),
	}
	callSite := &Options{
		Message: "call site",
		Timeout: time.Second,
		Soft:    BoolPtr(false),
	}

	merged := defaults.Merge(callSite)

	assert.Equal(t, "call site", merged.Message)
	assert.Equal(t, time.Second, merged.Timeout)
	assert.False(t, merged.GetSoft(true))
	assert.True(t, merged.GetScreenshot(false), "unset call-site field keeps the default")
}

func TestOptions_MergeNilSafe(t *testing.T) {
	var defaults *Options

	merged := defaults.Merge(&Options{Message: "m"})
	assert.Equal(t, "m", merged.Message)

	merged = (&Options{Timeout: time.Second}).Merge(nil)
	assert.Equal(t, time.Second, merged.Timeout)

	merged = defaults.Merge(nil)
	assert.NotNil(t, merged)
}

func TestOptions_MergeDoesNotMutate(t *testing.T) {
	defaults := &Options{Timeout: 5 * time.Second}
	callSite := &Options{Timeout: time.Second}

	_ = defaults.Merge(callSite)

	assert.Equal(t, 5*time.Second, defaults.Timeout)
	assert.Equal(t, time.Second, callSite.Timeout)
}

func TestOptions_Getters(t *testing.T) {
	var nilOpts *Options
	assert.False(t, nilOpts.GetSoft(false))
	assert.True(t, nilOpts.GetSoft(true))
	assert.Equal(t, time.Second, nilOpts.GetTimeout(time.Second))
	assert.Equal(t, "fallback", nilOpts.FailureText("fallback"))

	opts := &Options{Message: "override", Timeout: 2 * time.Second}
	assert.Equal(t, "override", opts.FailureText("fallback"))
	assert.Equal(t, 2*time.Second, opts.GetTimeout(time.Second))
}
