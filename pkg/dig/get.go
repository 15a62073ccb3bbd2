package dig

import (
	"reflect"
	"strings"
)

// Getter is implemented by containers that resolve keys themselves, such as
// tables, caches or ordered documents. TryGet must not panic and must report
// false for keys it cannot index by, including keys of the wrong type.
type Getter interface {
	TryGet(key any) (any, bool)
}

// Get performs a single lookup step of key into container. It reports false
// when the key is absent, out of range, of an unusable type, or when container
// is not indexable. Get never panics and never modifies container.
func Get(container any, key any) (any, bool) {
	switch c := container.(type) {
	case nil:
		return nil, false
	case map[string]any:
		if k, ok := key.(string); ok {
			v, ok := c[k]
			return v, ok
		}
	case []any:
		idx, ok := sequenceIndex(key, len(c))
		if !ok {
			return nil, false
		}
		return c[idx], true
	}
	return reflectGet(reflect.ValueOf(container), key)
}

func reflectGet(rv reflect.Value, key any) (any, bool) {
	for {
		if !rv.IsValid() {
			return nil, false
		}
		if rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
			if rv.IsNil() {
				return nil, false
			}
		}
		if rv.CanInterface() {
			if g, ok := rv.Interface().(Getter); ok {
				return g.TryGet(key)
			}
		}
		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			break
		}
		rv = rv.Elem()
	}

	switch rv.Kind() { //nolint:exhaustive // only container kinds are indexable
	case reflect.Map:
		mk, ok := mapKey(rv.Type().Key(), key)
		if !ok {
			return nil, false
		}
		v := rv.MapIndex(mk)
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, ok := sequenceIndex(key, rv.Len())
		if !ok {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	case reflect.Struct:
		kv := reflect.ValueOf(key)
		if kv.Kind() != reflect.String {
			return nil, false
		}
		return structFieldValue(rv, kv.String())
	default:
		return nil, false
	}
}

// mapKey converts key into a value usable with MapIndex on a map whose key
// type is kt. Unhashable keys and keys of an unrelated type are rejected so
// MapIndex cannot panic.
func mapKey(kt reflect.Type, key any) (reflect.Value, bool) {
	if key == nil {
		switch kt.Kind() { //nolint:exhaustive // only nilable comparable kinds
		case reflect.Interface, reflect.Pointer, reflect.Chan:
			return reflect.Zero(kt), true
		default:
			return reflect.Value{}, false
		}
	}
	kv := reflect.ValueOf(key)
	if !kv.Comparable() {
		return reflect.Value{}, false
	}
	switch {
	case kv.Type().AssignableTo(kt):
		return kv, true
	case kv.Kind() == reflect.String && kt.Kind() == reflect.String:
		return kv.Convert(kt), true
	default:
		return reflect.Value{}, false
	}
}

// sequenceIndex accepts any integer kind within [0, n).
func sequenceIndex(key any, n int) (int, bool) {
	kv := reflect.ValueOf(key)
	switch kv.Kind() { //nolint:exhaustive // only integer kinds index sequences
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := kv.Int()
		if i < 0 || i >= int64(n) {
			return 0, false
		}
		return int(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := kv.Uint()
		if u >= uint64(n) {
			return 0, false
		}
		return int(u), true
	default:
		return 0, false
	}
}

func structFieldValue(rv reflect.Value, key string) (any, bool) {
	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get("json"), ",")[0]
		if tagName == "-" {
			continue
		}
		if tagName == key || field.Name == key {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}
