package assert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_NumericCoercion(t *testing.T) {
	e := New()

	assert.NoError(t, e.Equal(30, float64(30), nil))
	assert.NoError(t, e.Equal("abc", "abc", nil))

	err := e.Equal(1, 2, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2, got 1")
}

func TestContains(t *testing.T) {
	e := New()

	assert.NoError(t, e.Contains("hello world", "world", nil))
	assert.Error(t, e.Contains("hello", "world", nil))
}

func TestArrayHelpers(t *testing.T) {
	e := New()
	arr := []any{"a", "b", float64(3)}

	assert.NoError(t, e.ArrayLength(arr, 3, nil))
	assert.Error(t, e.ArrayLength(arr, 2, nil))
	assert.NoError(t, e.ArrayContains(arr, "b", nil))
	assert.NoError(t, e.ArrayContains(arr, 3, nil), "numeric coercion applies to membership")
	assert.Error(t, e.ArrayContains(arr, "missing", nil))
}

func TestDatesEqualWithin(t *testing.T) {
	e := New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, e.DatesEqualWithin(base.Add(40*time.Millisecond), base, 50*time.Millisecond, nil))
	assert.NoError(t, e.DatesEqualWithin(base.Add(-40*time.Millisecond), base, 50*time.Millisecond, nil))

	err := e.DatesEqualWithin(base.Add(time.Second), base, 50*time.Millisecond, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "off by 1s")
}

func TestURLEquals_IgnoresTrailingSlash(t *testing.T) {
	e := New()

	assert.NoError(t, e.URLEquals("https://example.com/app/", "https://example.com/app", nil))
	assert.Error(t, e.URLEquals("https://example.com/a", "https://example.com/b", nil))
}

func TestFieldEquals(t *testing.T) {
	e := New()

	assert.NoError(t, e.FieldEquals("age", float64(30), 30, nil))

	err := e.FieldEquals("name", "bob", "alice", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "name"`)
}

func TestLooseEqual(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		want     bool
	}{
		{"identical strings", "a", "a", true},
		{"int vs float", 42, float64(42), true},
		{"numeric string", "42", 42, true},
		{"maps deep equal", map[string]any{"k": "v"}, map[string]any{"k": "v"}, true},
		{"different values", "a", "b", false},
		{"different numbers", 1, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooseEqual(tt.actual, tt.expected))
		})
	}
}
