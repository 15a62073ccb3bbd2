// Package limiter trims list and map results before they are rendered.
package limiter

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrLimitAndTail is returned when both Limit and Tail are set.
var ErrLimitAndTail = errors.New("--limit and --tail are mutually exclusive")

// Config selects a window of elements. Tail takes precedence over Offset.
type Config struct {
	Limit  int // 0 = unlimited
	Offset int
	Tail   int // 0 = disabled
}

// Validate rejects negative values and Limit combined with Tail.
func (c Config) Validate() error {
	for _, f := range []struct {
		flag string
		v    int
	}{{"limit", c.Limit}, {"offset", c.Offset}, {"tail", c.Tail}} {
		if f.v < 0 {
			return fmt.Errorf("--%s must be non-negative, got %d", f.flag, f.v)
		}
	}
	if c.Limit > 0 && c.Tail > 0 {
		return ErrLimitAndTail
	}
	return nil
}

// IsActive reports whether Apply would change anything.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// window returns the [start, end) bounds for a collection of n elements.
func (c Config) window(n int) (int, int) {
	if c.Tail > 0 {
		return max(n-c.Tail, 0), n
	}
	start := min(c.Offset, n)
	end := n
	if c.Limit > 0 {
		end = min(start+c.Limit, n)
	}
	return start, end
}

// Apply returns the selected window of data. Slices and arrays of any element
// type are windowed by position, map[string]any by sorted key. Other values
// are returned unchanged.
func (c Config) Apply(data any) any {
	if !c.IsActive() {
		return data
	}
	switch v := data.(type) {
	case []any:
		start, end := c.window(len(v))
		return v[start:end]
	case map[string]any:
		return c.applyToMap(v)
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() { //nolint:exhaustive // only sequences are windowed
	case reflect.Slice, reflect.Array:
		start, end := c.window(rv.Len())
		out := make([]any, 0, end-start)
		for i := start; i < end; i++ {
			out = append(out, rv.Index(i).Interface())
		}
		return out
	default:
		return data
	}
}

func (c Config) applyToMap(m map[string]any) map[string]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start, end := c.window(len(keys))
	result := make(map[string]any, end-start)
	for _, k := range keys[start:end] {
		result[k] = m[k]
	}
	return result
}
