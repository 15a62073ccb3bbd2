package dig

import "reflect"

// Dig walks keys into container and returns the value found. No type check is
// performed on the result. With no keys, container itself is returned.
func Dig(container any, keys ...any) (any, error) {
	v, _, err := walk(container, keys)
	return v, err
}

// As walks keys into container and returns the result as a T. A result that is
// not a T yields a *TypeError. When T is an interface type, any value
// implementing it is accepted; a nil result only satisfies the empty interface.
func As[T any](container any, keys ...any) (T, error) {
	var zero T
	v, chain, err := walk(container, keys)
	if err != nil {
		return zero, err
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	expected := reflect.TypeFor[T]()
	if v == nil && isEmptyInterface(expected) {
		return zero, nil
	}
	return zero, &TypeError{Chain: chain, Expected: expected, Actual: reflect.TypeOf(v)}
}

// AsOr is As with a fallback returned in place of any error.
func AsOr[T any](container any, fallback T, keys ...any) T {
	v, err := As[T](container, keys...)
	if err != nil {
		return fallback
	}
	return v
}

// DigType walks keys into container and, when expected is non-nil, requires the
// result to be an instance of expected: the identical type, or an implementation
// when expected is an interface type. A nil expected skips the check.
func DigType(container any, expected reflect.Type, keys ...any) (any, error) {
	v, chain, err := walk(container, keys)
	if err != nil {
		return nil, err
	}
	if expected == nil || isInstance(v, expected) {
		return v, nil
	}
	return nil, &TypeError{Chain: chain, Expected: expected, Actual: reflect.TypeOf(v)}
}

func walk(container any, keys []any) (any, Chain, error) {
	current := container
	chain := make(Chain, 0, len(keys))
	for _, key := range keys {
		next, ok := Get(current, key)
		if !ok {
			return nil, chain, &LookupError{Key: key, Chain: chain}
		}
		chain = append(chain, key)
		current = next
	}
	return current, chain, nil
}

func isInstance(v any, expected reflect.Type) bool {
	if v == nil {
		return isEmptyInterface(expected)
	}
	actual := reflect.TypeOf(v)
	if expected.Kind() == reflect.Interface {
		return actual.Implements(expected)
	}
	return actual == expected
}

func isEmptyInterface(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}
