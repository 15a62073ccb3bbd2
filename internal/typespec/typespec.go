// Package typespec maps the type names accepted on the command line to the
// runtime types produced by the loaders.
package typespec

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// Any is the name that disables the type check.
const Any = "any"

var registry = map[string]reflect.Type{
	Any:       nil,
	"string":  reflect.TypeFor[string](),
	"bool":    reflect.TypeFor[bool](),
	"int":     reflect.TypeFor[int](),
	"int64":   reflect.TypeFor[int64](),
	"uint64":  reflect.TypeFor[uint64](),
	"float64": reflect.TypeFor[float64](),
	"map":     reflect.TypeFor[map[string]any](),
	"list":    reflect.TypeFor[[]any](),
}

var aliases = map[string]string{
	"str":    "string",
	"float":  "float64",
	"object": "map",
	"array":  "list",
}

// Names lists the canonical type names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a name or alias, case-insensitively. The returned type is
// nil for Any.
func Lookup(name string) (reflect.Type, string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	t, ok := registry[key]
	if !ok {
		return nil, "", fmt.Errorf("unknown type %q (expected one of: %s)", name, strings.Join(Names(), ", "))
	}
	return t, key, nil
}

// Flag is a pflag.Value holding an expected type.
type Flag struct {
	name     string
	expected reflect.Type
}

var _ pflag.Value = (*Flag)(nil)

// NewFlag returns a Flag set to Any.
func NewFlag() *Flag {
	return &Flag{name: Any}
}

func (f *Flag) String() string {
	if f.name == "" {
		return Any
	}
	return f.name
}

// Set implements pflag.Value.
func (f *Flag) Set(value string) error {
	t, name, err := Lookup(value)
	if err != nil {
		return err
	}
	f.name = name
	f.expected = t
	return nil
}

// Type implements pflag.Value.
func (f *Flag) Type() string {
	return "type"
}

// Expected returns the selected type, or nil when no check was requested.
func (f *Flag) Expected() reflect.Type {
	return f.expected
}
