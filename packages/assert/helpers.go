package assert

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Equal asserts loose equality between two values. Numbers compare by value
// regardless of concrete type, everything else falls back to deep equality
// and finally to string form, matching how JSON-decoded data behaves.
func (e *Engine) Equal(actual, expected any, opts *Options) error {
	ok := LooseEqual(actual, expected)
	return e.Assert(ok, fmt.Sprintf("expected %v, got %v", expected, actual), opts)
}

// Contains asserts that haystack contains needle.
func (e *Engine) Contains(haystack, needle string, opts *Options) error {
	return e.Assert(strings.Contains(haystack, needle),
		fmt.Sprintf("expected %q to contain %q", haystack, needle), opts)
}

// ArrayLength asserts the length of a sequence.
func (e *Engine) ArrayLength(arr []any, want int, opts *Options) error {
	return e.Assert(len(arr) == want,
		fmt.Sprintf("expected array length %d, got %d", want, len(arr)), opts)
}

// ArrayContains asserts that a sequence includes an item (loose equality).
func (e *Engine) ArrayContains(arr []any, item any, opts *Options) error {
	found := false
	for _, v := range arr {
		if LooseEqual(v, item) {
			found = true
			break
		}
	}
	return e.Assert(found, fmt.Sprintf("expected array to include %v", item), opts)
}

// DatesEqualWithin asserts two timestamps are equal within a tolerance
// window. Timestamps are rarely bit-identical across systems, so exact
// equality is not useful here.
func (e *Engine) DatesEqualWithin(actual, expected time.Time, tolerance time.Duration, opts *Options) error {
	diff := actual.Sub(expected)
	if diff < 0 {
		diff = -diff
	}
	return e.Assert(diff <= tolerance,
		fmt.Sprintf("expected %s within %s of %s, off by %s",
			actual.Format(time.RFC3339Nano), tolerance, expected.Format(time.RFC3339Nano), diff), opts)
}

// TextEquals asserts exact text equality.
func (e *Engine) TextEquals(actual, expected string, opts *Options) error {
	return e.Assert(actual == expected,
		fmt.Sprintf("expected text %q, got %q", expected, actual), opts)
}

// URLEquals asserts URL equality, ignoring a trailing slash difference.
func (e *Engine) URLEquals(actual, expected string, opts *Options) error {
	ok := strings.TrimSuffix(actual, "/") == strings.TrimSuffix(expected, "/")
	return e.Assert(ok, fmt.Sprintf("expected URL %q, got %q", expected, actual), opts)
}

// TitleEquals asserts page title equality.
func (e *Engine) TitleEquals(actual, expected string, opts *Options) error {
	return e.Assert(actual == expected,
		fmt.Sprintf("expected title %q, got %q", expected, actual), opts)
}

// FieldEquals asserts a named form-field value (loose equality).
func (e *Engine) FieldEquals(field string, actual, expected any, opts *Options) error {
	ok := LooseEqual(actual, expected)
	return e.Assert(ok,
		fmt.Sprintf("field %q: expected %v, got %v", field, expected, actual), opts)
}

// LooseEqual compares two values the way JSON-decoded data wants to be
// compared: numeric values by magnitude, then deep equality, then string form.
func LooseEqual(actual, expected any) bool {
	if reflect.DeepEqual(actual, expected) {
		return true
	}

	actualNum, aOk := toFloat64(actual)
	expectedNum, eOk := toFloat64(expected)
	if aOk && eOk && actualNum == expectedNum {
		return true
	}

	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
