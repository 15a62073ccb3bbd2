package dig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNotFound     = errors.New("dig: key not found")
	ErrTypeMismatch = errors.New("dig: type mismatch")
)

// Chain is the ordered list of keys successfully consumed by a lookup.
type Chain []any

// String renders the chain as [k1][k2]... using each key's %v form.
func (c Chain) String() string {
	var b strings.Builder
	for _, k := range c {
		b.WriteByte('[')
		fmt.Fprint(&b, k)
		b.WriteByte(']')
	}
	return b.String()
}

// LookupError reports a key that could not be resolved.
// Chain never includes Key itself.
type LookupError struct {
	Key   any
	Chain Chain
}

func (e *LookupError) Error() string {
	if len(e.Chain) == 0 {
		return fmt.Sprintf("could not find %v in container", e.Key)
	}
	return fmt.Sprintf("could not find %v in container; successful chain: %s", e.Key, e.Chain)
}

// Is makes errors.Is(err, ErrNotFound) true for lookup failures.
func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// TypeError reports a fully resolved chain whose final value has the wrong type.
type TypeError struct {
	Chain    Chain
	Expected reflect.Type
	// Actual is nil when the resolved value is nil.
	Actual reflect.Type
}

func (e *TypeError) Error() string {
	chain := e.Chain.String()
	if chain == "" {
		chain = "(root)"
	}
	return fmt.Sprintf("%s was found, but the end value was not of the provided type: expected %s, got %s",
		chain, typeName(e.Expected), typeName(e.Actual))
}

// Is makes errors.Is(err, ErrTypeMismatch) true for type failures.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
