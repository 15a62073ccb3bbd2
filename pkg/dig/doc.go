// Package dig resolves chained key and index lookups into nested containers
// and optionally checks the type of the value found at the end of the chain.
//
// A single call replaces code such as
//
//	v := root["a"].(map[string]any)["b"].([]any)[0]
//
// with
//
//	v, err := dig.Dig(root, "a", "b", 0)
//
// Containers are maps of any key type, slices, arrays, structs (exported fields,
// matched by name or json tag), pointers to any of these, and any value that
// implements Getter. Keys are consumed left to right. When a key cannot be
// resolved the call returns a *LookupError (matching ErrNotFound) whose Chain
// holds the keys consumed before the failing one. A wrong key type for a
// sequence, such as a string index into a slice, is reported the same way.
//
// The final value can be validated in two ways:
//
//	n, err := dig.As[int](root, "a", "b", "c")              // compile-time type
//	v, err := dig.DigType(root, reflect.TypeOf(""), "a")  // runtime type, nil skips the check
//
// A value of the wrong type yields a *TypeError (matching ErrTypeMismatch).
// Interface types match any value implementing them.
//
// Chains render keys with their %v form, so keys without a useful string
// representation produce awkward messages. That is accepted: the error reports
// whatever the caller passed.
//
// Dig never mutates its input and keeps no state between calls.
package dig
